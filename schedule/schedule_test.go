package schedule_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiankangren/DeSyDe-meta/rng"
	"github.com/jiankangren/DeSyDe-meta/schedule"
)

// assertPermutation checks that the ranks are exactly {0..n-1}.
func assertPermutation(t *testing.T, s *schedule.Schedule) {
	t.Helper()
	r := s.Ranks()
	sort.Ints(r)
	for i, v := range r {
		require.Equal(t, i, v, "ranks %v", s.Ranks())
	}
}

func TestNew_IsPermutationAndTraversable(t *testing.T) {
	src := rng.New(7)
	elems := []int{4, 9, 2, 11, 6, 0, 3}
	for trial := 0; trial < 50; trial++ {
		s := schedule.New(elems, 100, src)
		assertPermutation(t, s)

		visited := map[int]bool{}
		e, err := s.ElementAt(0)
		require.NoError(t, err)
		for step := 0; step < len(elems); step++ {
			require.False(t, visited[e], "element %d visited twice", e)
			visited[e] = true
			e, err = s.Next(e)
			require.NoError(t, err)
		}
		assert.Equal(t, 100, e, "traversal ends at the dummy")
		assert.Len(t, visited, len(elems))
	}
}

func TestSetRanks_RepairsDuplicates(t *testing.T) {
	src := rng.New(3)
	s := schedule.New([]int{0, 1, 2, 3, 4}, 5, src)

	require.NoError(t, s.SetRanks([]int{1, 1, 1, 0, 9}, src))
	assertPermutation(t, s)
	r := s.Ranks()
	assert.Equal(t, 1, r[0], "first holder keeps its rank")
	assert.Equal(t, 0, r[3])

	err := s.SetRanks([]int{0, 1}, src)
	assert.ErrorIs(t, err, schedule.ErrRankLength)
}

func TestSwap_SelfInverse(t *testing.T) {
	src := rng.New(11)
	s := schedule.New([]int{5, 6, 7, 8}, 4, src)
	before := s.Ranks()

	require.NoError(t, s.Swap(0, 3))
	assert.NotEqual(t, before, s.Ranks())
	require.NoError(t, s.Swap(0, 3))
	assert.Equal(t, before, s.Ranks())

	assert.ErrorIs(t, s.Swap(0, 4), schedule.ErrIndexOutOfRange)
}

func TestQueries(t *testing.T) {
	s := schedule.FromOrder([]int{7, 3, 5}, 10)

	r, err := s.RankOf(5)
	require.NoError(t, err)
	assert.Equal(t, 2, r)

	r, err = s.RankAt(1)
	require.NoError(t, err)
	assert.Equal(t, 1, r)

	e, err := s.ElementAt(3)
	require.NoError(t, err)
	assert.Equal(t, 10, e, "rank n is the dummy")

	_, err = s.ElementAt(7)
	assert.ErrorIs(t, err, schedule.ErrElementNotFound)
	_, err = s.RankOf(42)
	assert.ErrorIs(t, err, schedule.ErrElementNotFound)
	_, err = s.Next(42)
	assert.ErrorIs(t, err, schedule.ErrElementNotFound)
	_, err = s.RankAt(-1)
	assert.ErrorIs(t, err, schedule.ErrIndexOutOfRange)

	assert.Equal(t, 7, s.First())
	assert.Equal(t, []int{3, 5, 10}, s.Successors())
	assert.Equal(t, "[7 3 5 | 10]", s.String())

	rel, err := s.RelativeRankOf(3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, rel, 1e-9)

	assert.Equal(t, 10, schedule.FromOrder(nil, 10).First())
}

func TestSetRankOf_AndSwapElements(t *testing.T) {
	s := schedule.FromOrder([]int{1, 2, 3}, 4)
	require.NoError(t, s.SwapElements(1, 3))
	assert.Equal(t, []int{3, 2, 1}, s.Order())

	require.NoError(t, s.SetRankOf(2, 5))
	assert.Equal(t, []int{2, 5, 0}, s.Ranks())
	assert.ErrorIs(t, s.SetRankOf(9, 0), schedule.ErrElementNotFound)

	s.Clamp(rng.New(1))
	assertPermutation(t, s)
	assert.Equal(t, []int{2, 1, 0}, s.Ranks(), "5 clamps to 2, the collision moves to the free rank")
}

func mustRank(t *testing.T, s *schedule.Schedule, e int) int {
	t.Helper()
	r, err := s.RankOf(e)
	require.NoError(t, err)

	return r
}

func TestMove_And_RankDiff(t *testing.T) {
	src := rng.New(5)
	s := schedule.FromOrder([]int{0, 1, 2, 3}, 4)

	require.NoError(t, s.Move([]float64{10, -10, 0, 0}, src))
	assertPermutation(t, s)
	assert.Equal(t, 3, mustRank(t, s, 0))

	d, err := s.RankDiff([]int{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, s.Ranks(), d)

	_, err = s.RankDiff([]int{1})
	assert.ErrorIs(t, err, schedule.ErrRankLength)
	assert.ErrorIs(t, s.Move([]float64{1}, src), schedule.ErrRankLength)
}

func TestRebuild_CarriesPersistingRanks(t *testing.T) {
	src := rng.New(9)
	old := schedule.FromOrder([]int{4, 2, 8}, 10)

	s := old.Rebuild([]int{2, 5, 4}, 11, src)
	assertPermutation(t, s)
	assert.Equal(t, 11, s.Dummy())
	assert.Equal(t, 1, mustRank(t, s, 2))
	assert.Equal(t, 0, mustRank(t, s, 4))
	assert.Equal(t, 2, mustRank(t, s, 5))
}

func TestClone_NoAliasing(t *testing.T) {
	s := schedule.FromOrder([]int{1, 2, 3}, 0)
	c := s.Clone()
	assert.True(t, s.Equal(c))

	require.NoError(t, c.Swap(0, 2))
	assert.False(t, s.Equal(c))
	assert.Equal(t, []int{1, 2, 3}, s.Order())
}
