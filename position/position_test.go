package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/rng"
	"github.com/jiankangren/DeSyDe-meta/schedule"
)

func withFitness(multi bool, f ...int64) *position.Position {
	p := position.New(2, 2, []float64{1, 1, 0.5}, multi)
	p.Fitness = f

	return p
}

func TestMapping_Processor(t *testing.T) {
	u := position.Unrestricted(3)
	assert.Equal(t, position.KindUnrestricted, u.Kind())
	assert.Equal(t, 3, u.Processor())
	assert.Equal(t, -1, u.Group())
	assert.Equal(t, 1, u.Clamp(2).Processor())

	d := position.FromDomain(1, []int{4, 6, 7}, 1)
	assert.Equal(t, position.KindFromDomain, d.Kind())
	assert.Equal(t, 6, d.Processor())
	assert.Equal(t, 1, d.Group())
	assert.Equal(t, 7, d.WithIndex(9).Processor(), "index clamps on resolve")
	assert.Equal(t, 2, d.WithIndex(9).Clamp(10).Index())
	assert.Equal(t, 0, d.WithIndex(-4).Clamp(10).Index())
	assert.Equal(t, 2, d.IndexOf(7))
	assert.Equal(t, -1, d.IndexOf(5))
	assert.Equal(t, "g1[1]→p6", d.String())

	assert.Equal(t, -1, position.FromDomain(0, nil, 0).Processor())
}

func TestDominates_InvalidIsIrreflexive(t *testing.T) {
	for _, multi := range []bool{true, false} {
		invalid := withFitness(multi, 10, -1, 3)
		valid := withFitness(multi, 50, 50, 50)
		empty := withFitness(multi)

		assert.False(t, invalid.Dominates(invalid))
		assert.False(t, invalid.Dominates(valid))
		assert.True(t, valid.Dominates(invalid))
		assert.True(t, valid.Dominates(empty))
		assert.False(t, empty.Dominates(valid))
		assert.True(t, valid.Dominates(nil))
	}
}

func TestDominates_Objectives(t *testing.T) {
	a := withFitness(true, 1, 2, 3)
	b := withFitness(true, 1, 3, 3)
	c := withFitness(true, 0, 4, 3)
	assert.True(t, a.Dominates(b))
	assert.False(t, b.Dominates(a))
	assert.False(t, a.Dominates(c))
	assert.True(t, a.Dominates(a), "component-wise ≤ includes equality")

	s1 := withFitness(false, 1, 2, 4) // 1 + 2 + 2 = 5
	s2 := withFitness(false, 2, 2, 2) // 2 + 2 + 1 = 5
	assert.InDelta(t, 5.0, s1.WeightedFitness(), 1e-9)
	assert.False(t, s1.Dominates(s2))
	assert.False(t, s1.Dominates(s1))
	assert.True(t, s1.Equal(s2))
	s2.Fitness[0] = 3
	assert.True(t, s1.Dominates(s2))
}

func TestClone_Deep(t *testing.T) {
	src := rng.New(1)
	p := position.New(3, 2, []float64{1}, false)
	p.Mappings[1] = position.FromDomain(0, []int{0, 1}, 1)
	p.ProcSched[0] = schedule.New([]int{0, 2}, 3, src)
	p.Fitness = []int64{7}
	p.AppGroup = []int{0}

	c := p.Clone()
	require.NoError(t, c.ProcSched[0].Swap(0, 1))
	c.Fitness[0] = 1
	c.Modes[0] = 5
	c.AppGroup[0] = 3

	assert.False(t, p.ProcSched[0].Equal(c.ProcSched[0]))
	assert.Equal(t, int64(7), p.Fitness[0])
	assert.Equal(t, 0, p.Modes[0])
	assert.Equal(t, 0, p.AppGroup[0])
	assert.Nil(t, c.SendSched[0])
	assert.Equal(t, 1, c.Processor(1))
}

func TestActorsOn(t *testing.T) {
	p := position.New(4, 3, nil, false)
	p.Mappings = []position.Mapping{
		position.Unrestricted(2), position.Unrestricted(0),
		position.Unrestricted(2), position.FromDomain(0, []int{1, 2}, 1),
	}
	assert.Equal(t, []int{0, 2, 3}, p.ActorsOn(2))
	assert.Nil(t, p.ActorsOn(1))
	assert.Equal(t, []int{2, 0, 2, 2}, p.Processors())
}

func TestOpposite_SpreadsCoLocatedActors(t *testing.T) {
	src := rng.New(21)
	for trial := 0; trial < 30; trial++ {
		p := position.New(3, 3, nil, false)
		for a := range p.Mappings {
			p.Mappings[a] = position.Unrestricted(0)
		}
		p.Opposite(src)
		procs := p.Processors()
		// the first two actors leave processor 0 for distinct free ones
		assert.NotEqual(t, 0, procs[0])
		assert.NotEqual(t, 0, procs[1])
		assert.NotEqual(t, procs[0], procs[1])
	}
}

func TestOpposite_StaysInDomain(t *testing.T) {
	src := rng.New(4)
	p := position.New(2, 5, nil, false)
	p.Mappings[0] = position.FromDomain(0, []int{3, 4}, 0)
	p.Mappings[1] = position.FromDomain(0, []int{3, 4}, 0)
	for trial := 0; trial < 20; trial++ {
		p.Opposite(src)
		for a := range p.Mappings {
			assert.Contains(t, []int{3, 4}, p.Processor(a))
		}
	}
}

func TestSpeed(t *testing.T) {
	s := position.NewSpeed(3, 2, 4)
	assert.Len(t, s.SendSched, 2)
	assert.Zero(t, s.Average())

	s.Mappings = []float64{5, -7, 1}
	s.ApplyBounds(4)
	assert.Equal(t, []float64{2, -2, 1}, s.Mappings)
	assert.InDelta(t, 1.0/3, s.Average(), 1e-9)

	c := s.Clone()
	c.Mappings[0] = 0
	assert.Equal(t, 2.0, s.Mappings[0])
	assert.Zero(t, position.NewSpeed(0, 0, 1).Average())

	p := position.New(3, 4, nil, false)
	assert.NoError(t, s.Fits(p, 2))
	assert.ErrorIs(t, s.Fits(p, 3), position.ErrSpeedLength)
	assert.ErrorIs(t, s.Fits(position.New(2, 4, nil, false), 2), position.ErrSpeedLength)
}

func TestString(t *testing.T) {
	p := position.New(1, 1, nil, false)
	p.ProcSched[0] = schedule.FromOrder([]int{0}, 1)
	p.Fitness = []int64{3}
	out := p.String()
	assert.Contains(t, out, "mappings: p0")
	assert.Contains(t, out, "proc_sched: [0 | 1]")
	assert.Contains(t, out, "send_sched: []")
	assert.Contains(t, out, "fitness: [3]")
}
