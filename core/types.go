package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrNegativeVertexID indicates a vertex id below zero.
	ErrNegativeVertexID = errors.New("core: negative vertex id")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadWeight indicates a negative edge weight (token count).
	ErrBadWeight = errors.New("core: negative edge weight")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Vertex represents an actor.
type Vertex struct {
	// ID is the actor id.
	ID int

	// Label is an optional human-readable name.
	Label string
}

// Edge represents a directed channel From→To.
type Edge struct {
	// ID is the dense edge id, assigned in insertion order.
	ID int

	// From is the producing vertex.
	From int

	// To is the consuming vertex.
	To int

	// Weight is the number of initial tokens carried by the channel.
	Weight int64
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithMultiEdges permits parallel edges between the same vertices.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithLoops permits self-loops.
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is a directed multigraph with integer vertex ids.
//
// muVert protects vertices; muEdgeAdj protects edges, out and in.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	allowMulti bool
	allowLoops bool

	vertices map[int]*Vertex
	edges    []*Edge       // edges[id] is the edge with that id
	out      map[int][]int // vertex → outgoing edge ids, insertion order
	in       map[int][]int // vertex → incoming edge ids, insertion order
}

// NewGraph creates an empty Graph. By default no loops and no multi-edges.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices: make(map[int]*Vertex),
		out:      make(map[int][]int),
		in:       make(map[int][]int),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.allowLoops
}

// Multigraph reports whether parallel edges are permitted.
func (g *Graph) Multigraph() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.allowMulti
}
