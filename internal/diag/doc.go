// Package diag defines the diagnostic model used by the diagram parser.
//
// The parser is best-effort: a malformed member line or an unnamed entity does
// not abort the parse, it is carried into the model and reported here as a
// warning. Only structural breakdowns (no entity and no relation at all, an
// unknown relation symbol) are errors.
//
// # Data model
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Path and Pos – the diagram file and 1-based line/column of the issue.
//   - Notes – optional extra lines of context.
//
// # Emitting diagnostics
//
// Producers emit through a Reporter. BagReporter aggregates into a Bag, which
// supports sorting and deduplication; DedupReporter filters repeats before
// forwarding.
//
// Package diag performs no IO. FormatShort renders a stable single-line form
// used by the CLI and by golden-style tests.
package diag
