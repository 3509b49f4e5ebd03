// Package rng centralizes the random streams used by the search.
//
// Every stochastic operation in the engine (schedule shuffles, duplicate-rank
// repair, stochastic rounding, velocity coefficients, reinitialisation) draws
// from a *Source that is owned by exactly one component. Sources are created
// from an explicit seed or derived from a parent stream, never from time or
// system entropy, so a run is reproducible from its configured seed.
//
// Concurrency:
//   - A *Source wraps math/rand.Rand and is NOT goroutine-safe.
//   - Use Derive to hand each worker, particle or individual its own stream.
package rng
