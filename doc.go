// Package desydemeta is a design-space exploration engine for dataflow
// applications on heterogeneous multiprocessors.
//
// A problem couples a set of synchronous dataflow applications (actors
// connected by token channels) with a platform of processors, each offering
// several frequency modes, joined by a TDMA interconnect. A solution maps
// every actor to a processor, picks a mode per processor, splits the TDMA
// slots, and orders actors and transfers on each processor.
//
// The packages build on one another:
//
//	core, dfs   directed multigraph and its traversals
//	model       applications, platform and their YAML form
//	rng         seeded, derivable random streams
//	schedule    per-processor orderings closed by a dummy element
//	position    one candidate solution and its velocity
//	constraint  violation counting, repair and deadlock detection
//	fitness     evaluation of positions against a simulator
//	sim         a self-timed reference simulator
//	particle    velocity-driven search agents
//	individual  opposition-based search agents
//	swarm       the parallel population loop and its Pareto front
//	config      run configuration
//	store       SQLite persistence of runs
//
// The desyde-meta command under cmd wires them together.
package desydemeta
