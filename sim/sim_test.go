package sim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiankangren/DeSyDe-meta/constraint"
	"github.com/jiankangren/DeSyDe-meta/fitness"
	"github.com/jiankangren/DeSyDe-meta/model"
	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/rng"
	"github.com/jiankangren/DeSyDe-meta/sim"
)

// pair is a producer (WCET 10) feeding a consumer (WCET 20) over one
// channel of 4-byte tokens, on a fast and a half-speed processor.
func pair(t *testing.T) *model.Model {
	t.Helper()
	doc := model.Document{
		Platform: model.Platform{
			TDMASlots:  4,
			SlotLength: 2,
			Processors: []model.Processor{
				{Name: "fast", Memory: 100, Modes: []model.Mode{{Speed: 100, Power: 1}}},
				{Name: "slow", Memory: 100, Modes: []model.Mode{{Speed: 50, Power: 2}}},
			},
		},
		Applications: []model.Application{{Name: "app"}},
		Actors: []model.Actor{
			{Name: "src", WCET: 10, Memory: 10},
			{Name: "dst", WCET: 20, Memory: 20},
		},
		Channels: []model.Channel{{Src: 0, Dst: 1, TokenSize: 4}},
	}
	m, err := doc.Build()
	require.NoError(t, err)

	return m
}

func TestRun_CrossProcessor(t *testing.T) {
	r, err := sim.New(pair(t)).Run(fitness.Design{
		Mappings: []int{0, 1},
		Modes:    []int{0, 0},
		TDMA:     []int{2, 0},
		ProcNext: []int{2, 3, 1, 0},
		SendNext: []int{1, 2, 0},
		RecNext:  []int{2, 0, 1},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), r.Start(0))
	assert.Equal(t, int64(10), r.Finish(0))
	assert.Equal(t, int64(14), r.Start(1), "ceil(4/2) slots of length 2")
	assert.Equal(t, int64(54), r.Finish(1), "WCET 20 at half speed")
	assert.Equal(t, []int64{54}, r.Periods())
	assert.Equal(t, int64(1*10+2*40), r.Energy())
	assert.Equal(t, []int64{90, 76}, r.Slack())
	assert.Empty(t, r.Stalled())
}

func TestRun_SameProcessor(t *testing.T) {
	r, err := sim.New(pair(t)).Run(fitness.Design{
		Mappings: []int{0, 0},
		Modes:    []int{0, 0},
		TDMA:     []int{0, 0},
		ProcNext: []int{1, 2, 3, 0},
		SendNext: []int{1, 2, 0},
		RecNext:  []int{1, 2, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{30}, r.Periods())
	assert.Equal(t, []int64{66, 100}, r.Slack())
}

func TestRun_UnlimitedMemory(t *testing.T) {
	m := pair(t)
	m.Platform.Processors[1].Memory = 0
	r, err := sim.New(m).Run(fitness.Design{
		Mappings: []int{0, 1},
		Modes:    []int{0, 0},
		TDMA:     []int{1, 0},
		ProcNext: []int{2, 3, 1, 0},
		SendNext: []int{1, 2, 0},
		RecNext:  []int{2, 0, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{90, math.MaxInt64}, r.Slack())
	assert.Equal(t, int64(18), r.Start(1), "one slot per token byte")
}

func TestRun_Stall(t *testing.T) {
	r, err := sim.New(pair(t)).Run(fitness.Design{
		Mappings: []int{0, 0},
		Modes:    []int{0, 0},
		TDMA:     []int{0, 0},
		ProcNext: []int{2, 0, 3, 1},
		SendNext: []int{1, 2, 0},
		RecNext:  []int{1, 2, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{sim.Stalled}, r.Periods())
	assert.Equal(t, []int{0, 1}, r.Stalled())
}

func TestRun_BadDesign(t *testing.T) {
	e := sim.New(pair(t))

	_, err := e.Run(fitness.Design{Mappings: []int{0}, Modes: []int{0, 0}, TDMA: []int{0, 0}})
	assert.ErrorIs(t, err, sim.ErrDesign)

	_, err = e.Run(fitness.Design{
		Mappings: []int{0, 1},
		Modes:    []int{0, 0},
		TDMA:     []int{1, 0},
		ProcNext: []int{1, 2, 3, 0},
		SendNext: []int{1, 2, 0},
		RecNext:  []int{2, 0, 1},
	})
	assert.ErrorIs(t, err, sim.ErrDesign, "actor 1 scheduled on 0 but mapped to 1")

	_, err = e.Run(fitness.Design{
		Mappings: []int{0, 0},
		Modes:    []int{0, 0},
		TDMA:     []int{0, 0},
		ProcNext: []int{0, 2, 3, 0},
		SendNext: []int{1, 2, 0},
		RecNext:  []int{1, 2, 0},
	})
	assert.ErrorIs(t, err, sim.ErrRing)
}

// A repaired chain simulates without stalling and with positive periods.
func TestEngine_RepairedChainIsConsistent(t *testing.T) {
	doc := model.Document{
		Platform: model.Platform{TDMASlots: 6, SlotLength: 1},
		Applications: []model.Application{{Name: "chain"}},
	}
	for i := 0; i < 3; i++ {
		doc.Platform.Processors = append(doc.Platform.Processors,
			model.Processor{Memory: 1000, Modes: []model.Mode{{Speed: 100, Power: 1}, {Speed: 200, Power: 3}}})
	}
	for i := 0; i < 6; i++ {
		doc.Actors = append(doc.Actors, model.Actor{WCET: int64(10 + i), Memory: 8})
		if i > 0 {
			doc.Channels = append(doc.Channels, model.Channel{Src: i - 1, Dst: i, TokenSize: 3})
		}
	}
	m, err := doc.Build()
	require.NoError(t, err)

	for seed := int64(1); seed <= 10; seed++ {
		src := rng.New(seed)
		c := constraint.NewChecker(m.Apps, m.Platform, src)
		ev, err := fitness.NewEvaluator(sim.New(m), c, m.Apps, fitness.Swarm, []int64{1000, 1000})
		require.NoError(t, err)

		p := position.New(6, 3, nil, false)
		for a := range p.Mappings {
			p.Mappings[a] = position.Unrestricted(src.Intn(3))
		}
		p.Modes = []int{src.Intn(2), src.Intn(2), src.Intn(2)}
		c.BuildSchedules(p)

		clean := false
		for i := 0; i < 50 && !clean; i++ {
			require.NoError(t, c.Repair(p))
			counts, err := c.Count(p)
			require.NoError(t, err)
			clean = counts.Total() == 0
		}
		require.True(t, clean, "seed %d", seed)

		require.NoError(t, ev.Evaluate(p), "seed %d", seed)
		assert.Positive(t, p.Fitness[0])
		assert.Positive(t, p.Fitness[1])
		assert.Zero(t, p.Fitness[2])
		assert.Zero(t, p.Violations)
	}
}
