package dfs

import (
	"fmt"

	"github.com/jiankangren/DeSyDe-meta/core"
)

// DetectCycle reports whether g has a directed cycle among the followed edges
// and, if so, returns one witness cycle as a vertex sequence starting at its
// smallest id (the closing edge back to the first vertex is implied).
func DetectCycle(g *core.Graph, opts ...Option) (bool, []int, error) {
	if g == nil {
		return false, nil, ErrGraphNil
	}
	o := buildOptions(opts)
	verts := g.Vertices()
	state := make(map[int]int, len(verts))
	path := make([]int, 0, len(verts))

	var visit func(id int) ([]int, error)
	visit = func(id int) ([]int, error) {
		state[id] = Gray
		path = append(path, id)
		nbrs, err := next(g, id, &o)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNeighborFetch, err)
		}
		for _, n := range nbrs {
			switch state[n] {
			case Gray:
				return extract(path, n), nil
			case White:
				if c, err := visit(n); c != nil || err != nil {
					return c, err
				}
			}
		}
		path = path[:len(path)-1]
		state[id] = Black

		return nil, nil
	}

	for _, v := range verts {
		select {
		case <-o.Ctx.Done():
			return false, nil, o.Ctx.Err()
		default:
		}
		if state[v] != White {
			continue
		}
		c, err := visit(v)
		if err != nil {
			return false, nil, err
		}
		if c != nil {
			return true, c, nil
		}
	}

	return false, nil, nil
}

// extract cuts the cycle closing at v out of the current path and rotates it
// so the smallest id comes first.
func extract(path []int, v int) []int {
	start := len(path) - 1
	for start >= 0 && path[start] != v {
		start--
	}
	cyc := append([]int(nil), path[start:]...)
	minIdx := 0
	for i, x := range cyc {
		if x < cyc[minIdx] {
			minIdx = i
		}
	}

	out := make([]int, 0, len(cyc))
	out = append(out, cyc[minIdx:]...)

	return append(out, cyc[:minIdx]...)
}
