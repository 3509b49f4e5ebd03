// Package core_test verifies thread-safety of core.Graph under concurrent operations.
package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiankangren/DeSyDe-meta/core"
)

// TestConcurrentAddEdge ensures that concurrent AddEdge calls on a multigraph
// are safe and every edge receives a distinct dense id.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph(core.WithMultiEdges())
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)

	ids := make([]int, num)
	for i := 0; i < num; i++ {
		go func(i int) {
			defer wg.Done()
			id, err := g.AddEdge(0, i+1, 0)
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, num)
	for _, id := range ids {
		require.False(t, seen[id], "duplicate edge id %d", id)
		seen[id] = true
	}
	succ, err := g.Successors(0)
	require.NoError(t, err)
	require.Len(t, succ, num)
}

// TestConcurrentReadsAndClone validates concurrent readers do not race with clones.
func TestConcurrentReadsAndClone(t *testing.T) {
	g := core.NewGraph(core.WithMultiEdges())
	for i := 0; i < 50; i++ {
		_, _ = g.AddEdge(i, i+1, int64(i%2))
	}

	const readers = 50
	var wg sync.WaitGroup
	wg.Add(2 * readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := g.Predecessors(i + 1)
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_ = g.Clone()
		}()
	}
	wg.Wait()
}
