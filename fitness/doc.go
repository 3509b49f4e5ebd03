// Package fitness turns a repaired position into its fitness vector.
//
// The position's three schedule families are flattened into successor
// arrays (see Successors), packed into a Design together with the mapping,
// modes and TDMA allocation, and handed to a simulator built by an injected
// Engine. Periods, energy and memory slack come back and are laid out in
// one of two vectors:
//
//	Genetic: [period(app0) … period(appN-1), energy]
//	Swarm:   [period(app0) … period(appN-1), energy, memoryViolations]
//
// Positions with residual ordering violations get a penalty instead of
// their simulated periods: (1+violations)·penalty[app] for every
// application, optionally inflated by the penalties of the applications
// sharing a processor with it, and penalty[last]·violations for energy.
//
// Errors:
//
//   - ErrWeightLength, ErrPenaltyLength   construction-time vector sizes
//   - ErrShape                            a schedule family does not cover
//     every element exactly once
//   - ErrInconsistentPeriod               a non-positive period without any
//     violation; the model rejects zero WCETs, so this signals an engine bug
//   - ErrNilEngine                        missing engine
//
// An Evaluator holds no per-evaluation state beyond its Counter and may be
// owned by a single agent; it is not safe for concurrent use when the
// Counter is not.
package fitness
