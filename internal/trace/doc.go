// Package trace is the logging layer of arcucheck.
//
// Events describe what the checker is doing: which design file is being
// processed, how long the generator took, how many deviations a comparison
// produced. A run with tracing disabled uses the Nop tracer and pays nothing.
//
// # Usage
//
//	arcucheck batch --trace=- --trace-level=detail designs/
//
// # Tracers
//
//   - Nop: disabled tracing
//   - StreamTracer: writes every event to a file or stderr
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase shows driver and pass events (parse, generate, compare),
// LevelDetail adds per-file events, LevelDebug shows everything.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "compare", 0)
//	defer span.End("")
package trace
