// Package position defines a candidate solution of the search and the
// particle velocity that moves it.
//
// A Position maps every actor to a processor, picks an operating mode and a
// TDMA slot allocation per processor, and holds three schedule families
// (execution, send, receive) with one schedule per processor. Its fitness
// vector is empty until evaluated; a negative component marks the position
// invalid.
//
// Actor mappings are a tagged value: Unrestricted(proc) names a processor
// directly, FromDomain(group, domain, index) selects the index-th processor of
// a symmetry group's domain. Callers read the target through
// Mapping.Processor and never branch on the representation.
//
// Positions are mutable and owned by exactly one agent. Anything stored
// beyond the current generation (personal best, global best, Pareto front)
// must be a Clone.
package position
