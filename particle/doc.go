// Package particle implements the particle-swarm agent.
//
// A Particle owns its current position, its personal best, the global best
// handed to it by the population loop, and a velocity with one real
// component per numeric field of the position. Every update draws two
// coefficients y1,y2 ∈ [0,1] and sets, per component,
//
//	v = inertia·v + y1·wLocal·(local−cur) + y2·wGlobal·(global−cur)
//
// Schedule components are indexed by element id and compare the rank of
// that element in each position's own schedules. The move adds the
// stochastically rounded velocity, clamps the mapping, rebuilds the
// schedules for the new mapping (persisting elements keep their rank),
// applies the schedule velocities and repairs.
//
// A particle whose primary objective stays negative for more than the
// invalid-move limit of successive evaluations is reinitialised at random
// before its next move. Residual violations alone do not count: they are
// already priced into the penalised fitness.
package particle
