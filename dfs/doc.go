// Package dfs provides depth-first algorithms over core.Graph: single-source
// traversal, reachability closures, topological ordering and cycle detection.
//
// All functions treat the graph as directed and read it through the public
// core.Graph API, so they may run concurrently with other readers.
//
// Edge filtering:
//
// Every entry point accepts options. WithEdgeFilter restricts traversal to the
// edges for which the predicate returns true; the typical use is following
// only channels without initial tokens:
//
//	order, err := dfs.TopologicalSort(g, dfs.WithEdgeFilter(func(e *core.Edge) bool {
//		return e.Weight == 0
//	}))
//
// Complexity: every algorithm is O(V + E) time and O(V) memory.
package dfs
