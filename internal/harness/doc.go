// Package harness runs YAML-defined scenarios against a real runtime and
// asserts on the resulting state and activity trace.
//
// A scenario seeds an initial counter value, dispatches a sequence of
// actions through the same single-writer loop production uses, and then
// evaluates assertions against the final state. Scenarios run with a fixed
// wall clock and a fixed dispatch token, so the trace a scenario produces
// is byte-for-byte reproducible and can be pinned with a golden file
// (see RunWithGolden).
package harness
