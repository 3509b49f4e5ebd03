// Package model holds the static description of a design-space exploration
// problem: the target platform (processors, operating modes, TDMA budget)
// and the dataflow applications (actors, channels with initial tokens,
// period constraints).
//
// Applications are backed by a core.Graph multigraph whose vertices are
// actors and whose edge ids coincide with channel ids. Dependency queries
// (DependsOn, Successors, Predecessors, Roots) follow zero-token channels
// only; a channel carrying initial tokens is not a precedence. The
// transitive closure is computed once at construction, so all queries are
// read-only and safe for concurrent use.
//
// Both structures are usually decoded from a YAML document:
//
//	m, err := model.Load("problem.yaml")
//	if err != nil { ... }
//	fmt.Println(m.Apps.NumActors(), m.Platform.NumProcessors())
package model
