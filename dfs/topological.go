// Package dfs: topological ordering.
//
// TopologicalSort computes a linear ordering of vertices such that for every
// followed edge u→v, u appears before v. Vertices are started in ascending id
// order and neighbors explored in edge order, so the result is deterministic.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package dfs

import (
	"fmt"

	"github.com/jiankangren/DeSyDe-meta/core"
)

// topoSorter encapsulates state for a topological sort traversal.
type topoSorter struct {
	graph *core.Graph
	opts  Options
	state map[int]int // White, Gray or Black
	order []int       // post-order
}

// TopologicalSort returns a topological ordering of all vertices of g.
// Returns ErrGraphNil, ErrCycleDetected, a wrapped ErrNeighborFetch or the
// context error.
func TopologicalSort(g *core.Graph, opts ...Option) ([]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	verts := g.Vertices()
	t := &topoSorter{
		graph: g,
		opts:  buildOptions(opts),
		state: make(map[int]int, len(verts)),
		order: make([]int, 0, len(verts)),
	}
	for _, v := range verts {
		if t.state[v] == White {
			if err := t.visit(v); err != nil {
				return nil, err
			}
		}
	}
	// reverse post-order
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}

	return t.order, nil
}

func (t *topoSorter) visit(id int) error {
	select {
	case <-t.opts.Ctx.Done():
		return t.opts.Ctx.Err()
	default:
	}
	switch t.state[id] {
	case Gray:
		return ErrCycleDetected
	case Black:
		return nil
	}
	t.state[id] = Gray

	nbrs, err := next(t.graph, id, &t.opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
	}
	for _, n := range nbrs {
		if err = t.visit(n); err != nil {
			return err
		}
	}
	t.state[id] = Black
	t.order = append(t.order, id)

	return nil
}
