// Package core provides the in-memory dataflow graph used to describe
// applications: vertices are actors, directed edges are channels.
//
// The Graph G = (V,E) is a directed multigraph with integer vertex ids:
//
//   - Parallel channels between the same actors (WithMultiEdges)
//   - Self-loop channels, e.g. actor state carried over iterations (WithLoops)
//   - Edge Weight holds the number of initial tokens on the channel
//   - Edge IDs are dense and assigned in insertion order (0, 1, 2, …), so an
//     edge id doubles as a channel id
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj), matching the locking model of the rest of the module
//
// Core Methods:
//
//	AddVertex(id int) error                          // O(1)
//	HasVertex(id int) bool                           // O(1)
//	AddEdge(from, to int, weight int64) (int, error) // O(1)†
//	Edge(id int) (*Edge, error)                      // O(1)
//	OutEdges(id) / InEdges(id) ([]*Edge, error)      // O(d)
//	Successors(id) / Predecessors(id) ([]int, error) // O(d log d), unique, sorted
//	Vertices() []int, Edges() []*Edge                // sorted by id
//	Clone() *Graph                                   // deep copy
//	Subgraph(keep func(*Edge) bool) *Graph           // all vertices, filtered edges
//
//	† amortized; multi-edge checks scan the out-list of from.
//
// Errors:
//
//	ErrNegativeVertexID    – vertex id < 0
//	ErrVertexNotFound      – missing vertex
//	ErrEdgeNotFound        – missing edge
//	ErrBadWeight           – negative token count
//	ErrLoopNotAllowed      – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
package core
