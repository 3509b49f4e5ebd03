// Package core_test verifies core.Graph method-level contracts.
package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiankangren/DeSyDe-meta/core"
)

// TestGraph_AddVertex covers id validation, idempotence and labels.
func TestGraph_AddVertex(t *testing.T) {
	g := core.NewGraph()
	assert.ErrorIs(t, g.AddVertex(-1), core.ErrNegativeVertexID)

	require.NoError(t, g.AddVertex(3))
	require.NoError(t, g.AddVertex(3))
	assert.Equal(t, 1, g.VertexCount())
	assert.True(t, g.HasVertex(3))
	assert.False(t, g.HasVertex(4))

	require.NoError(t, g.AddLabeledVertex(3, "fft"))
	v, err := g.Vertex(3)
	require.NoError(t, err)
	assert.Equal(t, "fft", v.Label)

	_, err = g.Vertex(9)
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestGraph_AddEdge checks dense ids, constraint enforcement and adjacency.
func TestGraph_AddEdge(t *testing.T) {
	g := core.NewGraph()

	id, err := g.AddEdge(0, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	id, err = g.AddEdge(1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = g.AddEdge(0, 1, 0)
	assert.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)
	_, err = g.AddEdge(2, 2, 0)
	assert.ErrorIs(t, err, core.ErrLoopNotAllowed)
	_, err = g.AddEdge(0, 2, -1)
	assert.ErrorIs(t, err, core.ErrBadWeight)
	_, err = g.AddEdge(-1, 2, 0)
	assert.ErrorIs(t, err, core.ErrNegativeVertexID)

	assert.Equal(t, []int{0, 1, 2}, g.Vertices())
	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasEdge(1, 2))
	assert.False(t, g.HasEdge(2, 1))

	e, err := g.Edge(1)
	require.NoError(t, err)
	assert.Equal(t, core.Edge{ID: 1, From: 1, To: 2, Weight: 2}, *e)
	_, err = g.Edge(5)
	assert.ErrorIs(t, err, core.ErrEdgeNotFound)
}

// TestGraph_MultiAndLoops verifies the permissive options.
func TestGraph_MultiAndLoops(t *testing.T) {
	g := core.NewGraph(core.WithMultiEdges(), core.WithLoops())
	assert.True(t, g.Multigraph())
	assert.True(t, g.Looped())

	_, err := g.AddEdge(0, 1, 0)
	require.NoError(t, err)
	_, err = g.AddEdge(0, 1, 1)
	require.NoError(t, err)
	_, err = g.AddEdge(1, 1, 1)
	require.NoError(t, err)

	assert.Len(t, g.EdgesBetween(0, 1), 2)

	succ, err := g.Successors(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, succ, "parallel edges collapse to one successor")

	pred, err := g.Predecessors(1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, pred)

	in, err := g.InEdges(1)
	require.NoError(t, err)
	assert.Len(t, in, 3)

	_, err = g.OutEdges(7)
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
	_, err = g.Successors(7)
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestGraph_CloneAndSubgraph verifies deep copies and edge filtering.
func TestGraph_CloneAndSubgraph(t *testing.T) {
	g := core.NewGraph(core.WithMultiEdges())
	_, _ = g.AddEdge(0, 1, 0)
	_, _ = g.AddEdge(1, 2, 1)
	_, _ = g.AddEdge(2, 0, 0)
	require.NoError(t, g.AddVertex(5))

	c := g.Clone()
	assert.Equal(t, g.Vertices(), c.Vertices())
	assert.Equal(t, g.EdgeCount(), c.EdgeCount())
	assert.True(t, c.Multigraph())

	_, _ = c.AddEdge(0, 5, 0)
	assert.Equal(t, 3, g.EdgeCount(), "clone must not alias the source")

	zero := g.Subgraph(func(e *core.Edge) bool { return e.Weight == 0 })
	assert.Equal(t, []int{0, 1, 2, 5}, zero.Vertices())
	assert.Equal(t, 2, zero.EdgeCount())
	assert.False(t, zero.HasEdge(1, 2))
	assert.True(t, zero.HasEdge(2, 0))
}
