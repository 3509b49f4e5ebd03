package dfs

import (
	"fmt"

	"github.com/jiankangren/DeSyDe-meta/core"
)

// DFS explores g from start and returns post-order, depths, parents and the
// visited set.
//
// Returns ErrGraphNil, ErrStartVertexNotFound, a wrapped ErrNeighborFetch,
// the context error on cancellation, or the error of an OnVisit hook.
func DFS(g *core.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(start) {
		return nil, ErrStartVertexNotFound
	}
	o := buildOptions(opts)
	res := &Result{
		Depth:   map[int]int{},
		Parent:  map[int]int{},
		Visited: map[int]bool{},
	}
	if err := walk(g, start, 0, &o, res); err != nil {
		return nil, err
	}

	return res, nil
}

func walk(g *core.Graph, id, depth int, o *Options, res *Result) error {
	select {
	case <-o.Ctx.Done():
		return o.Ctx.Err()
	default:
	}
	res.Visited[id] = true
	res.Depth[id] = depth
	if o.OnVisit != nil {
		if err := o.OnVisit(id); err != nil {
			return err
		}
	}
	nbrs, err := next(g, id, o)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
	}
	for _, n := range nbrs {
		if res.Visited[n] {
			continue
		}
		res.Parent[n] = id
		if err = walk(g, n, depth+1, o, res); err != nil {
			return err
		}
	}
	res.Order = append(res.Order, id)

	return nil
}
