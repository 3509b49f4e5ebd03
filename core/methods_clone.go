package core

// Clone returns a deep copy of the Graph: flags, vertices, edges and adjacency.
// Edge ids are preserved.
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	return g.Subgraph(func(*Edge) bool { return true })
}

// Subgraph returns a deep copy holding every vertex and only the edges for
// which keep returns true. Kept edges are renumbered densely in their original
// order; use Edge.ID of the source graph when a stable id is required.
//
// Typical use: the zero-token precedence graph of an application,
//
//	prec := g.Subgraph(func(e *core.Edge) bool { return e.Weight == 0 })
//
// Complexity: O(V + E)
func (g *Graph) Subgraph(keep func(*Edge) bool) *Graph {
	g.muVert.RLock()
	clone := &Graph{
		allowMulti: g.allowMulti,
		allowLoops: g.allowLoops,
		vertices:   make(map[int]*Vertex, len(g.vertices)),
		out:        make(map[int][]int),
		in:         make(map[int][]int),
	}
	for id, v := range g.vertices {
		clone.vertices[id] = &Vertex{ID: v.ID, Label: v.Label}
	}
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	for _, e := range g.edges {
		if !keep(e) {
			continue
		}
		eid := len(clone.edges)
		clone.edges = append(clone.edges, &Edge{ID: eid, From: e.From, To: e.To, Weight: e.Weight})
		clone.out[e.From] = append(clone.out[e.From], eid)
		clone.in[e.To] = append(clone.in[e.To], eid)
	}

	return clone
}
