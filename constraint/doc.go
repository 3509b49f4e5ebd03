// Package constraint detects and repairs ordering inconsistencies of a
// position and simulates firing to find cross-processor deadlocks.
//
// Four pairwise relations are checked over every processor, each unordered
// pair of schedule elements once:
//
//   - execution order: an actor scheduled after one of its dependants, or an
//     initial-token channel whose consumer is not scheduled first;
//   - send order: two channels leaving a processor are sent in the firing
//     order of their sources;
//   - processor-level receive order: the same channels are sent in the firing
//     order of their destinations when those share a processor;
//   - receive order: channels arriving at a processor are received in the
//     firing order of their destinations.
//
// Repair runs one greedy sweep per relation in a fixed phase order and swaps
// the two ranks of every offending pair. A sweep may introduce new
// violations elsewhere; residual counts are an ordinary outcome that the
// fitness layer turns into a penalty.
//
// The deadlock check fires actors whose predecessors have all fired and
// which are next on their processor. It reports a deadlock when ready
// actors remain that no processor will pick next. Repair has no deadlock
// phase: two chains can wait on each other across processors with a clean
// execution order, and Count reports that as one violation.
//
// A Checker owns its random stream and last-deadlock diagnostics. It must not
// be shared between goroutines; give each agent its own.
//
// Complexity (k actors and m channels on one processor, A actors in total):
//
//   - execution sweep:           O(k²) per processor, closure lookups are O(1)
//   - send and receive sweeps:   O(m²·k) per processor, each pair resolves the
//     execution ranks of its endpoints
//   - Count, Repair:             the sum of the sweeps over all processors
//   - Estimate:                  as Count, stopping at the first dirty stage
//   - CrossProcDeadlock:         O(A·(A+k))
//
// Errors:
//
//   - ErrMissingSchedule   a schedule family has not been built
//   - ErrShape             slice lengths do not match the model
//   - ErrProcessorRange    a mapping resolves outside the platform
//   - schedule errors      ErrElementNotFound when a schedule lost an element,
//     wrapped with the relation and processor
package constraint
