// Package core: Graph method implementations.
//
// Vertex and edge management on the Graph type defined in types.go. Reads take
// the read side of the relevant lock; vertex insertion takes muVert and then
// muEdgeAdj, never the reverse.

package core

import (
	"sort"
)

// AddVertex inserts a vertex with the given id. Adding an existing vertex is
// a no-op. Returns ErrNegativeVertexID for id < 0.
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id int) error {
	return g.AddLabeledVertex(id, "")
}

// AddLabeledVertex inserts a vertex carrying a label. An existing vertex keeps
// its id and has its label replaced when label is non-empty.
func (g *Graph) AddLabeledVertex(id int, label string) error {
	if id < 0 {
		return ErrNegativeVertexID
	}
	g.muVert.Lock()
	defer g.muVert.Unlock()

	if v, exists := g.vertices[id]; exists {
		if label != "" {
			v.Label = label
		}
		return nil
	}
	g.vertices[id] = &Vertex{ID: id, Label: label}

	return nil
}

// HasVertex reports whether a vertex with the given id exists.
// Complexity: O(1).
func (g *Graph) HasVertex(id int) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, exists := g.vertices[id]

	return exists
}

// Vertex returns the vertex with the given id.
func (g *Graph) Vertex(id int) (*Vertex, error) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return nil, ErrVertexNotFound
	}

	return v, nil
}

// AddEdge creates a directed edge from→to carrying weight initial tokens and
// returns its id. Missing endpoints are added.
//
// Returns ErrNegativeVertexID, ErrBadWeight, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
// Complexity: O(1), plus O(out(from)) for the multi-edge check.
func (g *Graph) AddEdge(from, to int, weight int64) (int, error) {
	// 1) Input validation
	if from < 0 || to < 0 {
		return -1, ErrNegativeVertexID
	}
	if weight < 0 {
		return -1, ErrBadWeight
	}
	if from == to && !g.allowLoops {
		return -1, ErrLoopNotAllowed
	}
	// 2) Ensure both endpoints exist (idempotent)
	if err := g.AddVertex(from); err != nil {
		return -1, err
	}
	if err := g.AddVertex(to); err != nil {
		return -1, err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	// 3) Multi-edge existence check
	if !g.allowMulti {
		for _, eid := range g.out[from] {
			if g.edges[eid].To == to {
				return -1, ErrMultiEdgeNotAllowed
			}
		}
	}

	// 4) Dense id = position in the edge catalog
	eid := len(g.edges)
	g.edges = append(g.edges, &Edge{ID: eid, From: from, To: to, Weight: weight})
	g.out[from] = append(g.out[from], eid)
	g.in[to] = append(g.in[to], eid)

	return eid, nil
}

// Edge returns the edge with the given id.
// Complexity: O(1).
func (g *Graph) Edge(id int) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	if id < 0 || id >= len(g.edges) {
		return nil, ErrEdgeNotFound
	}

	return g.edges[id], nil
}

// HasEdge reports whether at least one edge from→to exists.
func (g *Graph) HasEdge(from, to int) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	for _, eid := range g.out[from] {
		if g.edges[eid].To == to {
			return true
		}
	}

	return false
}

// EdgesBetween returns every edge from→to in id order.
func (g *Graph) EdgesBetween(from, to int) []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	var out []*Edge
	for _, eid := range g.out[from] {
		if e := g.edges[eid]; e.To == to {
			out = append(out, e)
		}
	}

	return out
}

// OutEdges returns the edges leaving id, in id order.
// Complexity: O(d).
func (g *Graph) OutEdges(id int) ([]*Edge, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.collect(g.out[id]), nil
}

// InEdges returns the edges entering id, in id order.
// Complexity: O(d).
func (g *Graph) InEdges(id int) ([]*Edge, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.collect(g.in[id]), nil
}

// Successors returns the unique, sorted ids of vertices reachable by one edge.
// Complexity: O(d log d).
func (g *Graph) Successors(id int) ([]int, error) {
	edges, err := g.OutEdges(id)
	if err != nil {
		return nil, err
	}

	return uniqueEnds(edges, func(e *Edge) int { return e.To }), nil
}

// Predecessors returns the unique, sorted ids of vertices with an edge into id.
// Complexity: O(d log d).
func (g *Graph) Predecessors(id int) ([]int, error) {
	edges, err := g.InEdges(id)
	if err != nil {
		return nil, err
	}

	return uniqueEnds(edges, func(e *Edge) int { return e.From }), nil
}

// Vertices returns all vertex ids in ascending order.
// Complexity: O(V·logV)
func (g *Graph) Vertices() []int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	ids := make([]int, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// Edges returns all edges ordered by id.
// Complexity: O(E)
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// VertexCount returns the number of vertices. O(1).
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns the number of edges. O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// Internal helpers:
////////////////////

// collect resolves edge ids to edges. Caller holds muEdgeAdj.
func (g *Graph) collect(ids []int) []*Edge {
	out := make([]*Edge, 0, len(ids))
	for _, eid := range ids {
		out = append(out, g.edges[eid])
	}

	return out
}

// uniqueEnds projects edges to one endpoint and deduplicates.
func uniqueEnds(edges []*Edge, end func(*Edge) int) []int {
	seen := make(map[int]struct{}, len(edges))
	ids := make([]int, 0, len(edges))
	for _, e := range edges {
		v := end(e)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ids = append(ids, v)
	}
	sort.Ints(ids)

	return ids
}
