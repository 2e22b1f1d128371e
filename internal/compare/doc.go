// Package compare diffs a design diagram against an implementation diagram.
//
// Types are matched by fully-qualified name per kind (classes against
// classes, interfaces against interfaces). A type present on one side only is
// re-resolved by simple name over the whole opposite collection; a hit is
// reported as a possible relocation instead of an absence. Members are
// compared only for types present under the same name on both sides, so a
// misplaced type never produces member noise.
//
// All functions are pure and deterministic: output order follows the order
// of the input diagrams.
package compare
