package dfs

import (
	"context"
	"errors"

	"github.com/jiankangren/DeSyDe-meta/core"
)

// Visitation states of a vertex.
const (
	White = iota // not visited yet
	Gray         // on the recursion stack
	Black        // fully explored
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates the start vertex does not exist.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")

	// ErrCycleDetected indicates a cycle was found during TopologicalSort.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrNeighborFetch indicates a failure to retrieve outgoing edges.
	ErrNeighborFetch = errors.New("dfs: failed to fetch neighbors")
)

// Option configures a traversal.
type Option func(*Options)

// Options holds traversal parameters.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// EdgeFilter, if non-nil, selects which edges are followed.
	EdgeFilter func(e *core.Edge) bool

	// OnVisit, if non-nil, is called in pre-order. Returning an error aborts.
	OnVisit func(id int) error
}

// DefaultOptions returns Options with a background context, no filter and no hook.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the cancellation context. A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithEdgeFilter restricts traversal to edges accepted by keep.
func WithEdgeFilter(keep func(e *core.Edge) bool) Option {
	return func(o *Options) {
		o.EdgeFilter = keep
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(id int) error) Option {
	return func(o *Options) {
		o.OnVisit = fn
	}
}

// Result captures a single-source traversal.
type Result struct {
	// Order records vertices in post-order.
	Order []int

	// Depth maps each visited vertex to its tree depth from the start.
	Depth map[int]int

	// Parent maps each visited vertex (except the start) to its tree parent.
	Parent map[int]int

	// Visited marks every discovered vertex.
	Visited map[int]bool
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// next returns the filtered successor ids of id, preserving edge order and
// dropping repeats caused by parallel edges.
func next(g *core.Graph, id int, o *Options) ([]int, error) {
	edges, err := g.OutEdges(id)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(edges))
	seen := make(map[int]struct{}, len(edges))
	for _, e := range edges {
		if o.EdgeFilter != nil && !o.EdgeFilter(e) {
			continue
		}
		if _, dup := seen[e.To]; dup {
			continue
		}
		seen[e.To] = struct{}{}
		out = append(out, e.To)
	}

	return out, nil
}
