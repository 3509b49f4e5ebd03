package dfs

import (
	"sort"

	"github.com/jiankangren/DeSyDe-meta/core"
)

// Reachable returns the sorted ids of all vertices reachable from start by a
// non-empty path. start itself is included only if it lies on a cycle.
func Reachable(g *core.Graph, start int, opts ...Option) ([]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(start) {
		return nil, ErrStartVertexNotFound
	}
	o := buildOptions(opts)

	seen := map[int]bool{}
	stack, err := next(g, start, &o)
	if err != nil {
		return nil, err
	}
	for len(stack) > 0 {
		select {
		case <-o.Ctx.Done():
			return nil, o.Ctx.Err()
		default:
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[v] {
			continue
		}
		seen[v] = true
		nbrs, err := next(g, v, &o)
		if err != nil {
			return nil, err
		}
		for _, n := range nbrs {
			if !seen[n] {
				stack = append(stack, n)
			}
		}
	}

	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)

	return out, nil
}

// Closure computes Reachable for every vertex of g.
// Complexity: O(V·(V+E)).
func Closure(g *core.Graph, opts ...Option) (map[int][]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	verts := g.Vertices()
	out := make(map[int][]int, len(verts))
	for _, v := range verts {
		r, err := Reachable(g, v, opts...)
		if err != nil {
			return nil, err
		}
		out[v] = r
	}

	return out, nil
}
