package individual_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiankangren/DeSyDe-meta/constraint"
	"github.com/jiankangren/DeSyDe-meta/fitness"
	"github.com/jiankangren/DeSyDe-meta/individual"
	"github.com/jiankangren/DeSyDe-meta/model"
	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/rng"
	"github.com/jiankangren/DeSyDe-meta/sim"
)

func load(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.Load("../model/testdata/two_apps.yaml")
	require.NoError(t, err)

	return m
}

func newIndividual(t *testing.T, m *model.Model, engine fitness.Engine, seed int64, limit int) *individual.Individual {
	t.Helper()
	c := constraint.NewChecker(m.Apps, m.Platform, rng.New(seed))
	ev, err := fitness.NewEvaluator(engine, c, m.Apps, fitness.Genetic, []int64{1000, 1000, 500},
		fitness.WithCoMappingPenalty(true))
	require.NoError(t, err)
	in, err := individual.New(int(seed), m.Apps, m.Platform, c, ev, individual.Params{
		InvalidLimit: limit,
		Weights:      []float64{1, 1, 0.01},
	})
	require.NoError(t, err)

	return in
}

// assertWellFormed checks the symmetry-group and schedule invariants.
func assertWellFormed(t *testing.T, m *model.Model, p *position.Position) {
	t.Helper()
	used := map[int]bool{}
	for app, g := range p.AppGroup {
		assert.LessOrEqual(t, g, app)
		assert.GreaterOrEqual(t, g, 0)
		used[g] = true
	}
	require.Len(t, p.ProcGroup, m.Platform.NumProcessors())
	for _, g := range p.ProcGroup {
		assert.True(t, used[g], "processor group %d not used by any application", g)
	}
	domains := constraint.Domains(p.ProcGroup, m.Apps.NumApps())
	for a, mp := range p.Mappings {
		g := p.AppGroup[m.Apps.AppOf(a)]
		assert.Equal(t, position.KindFromDomain, mp.Kind())
		assert.Contains(t, domains[g], mp.Processor())
	}
	for proc := 0; proc < m.Platform.NumProcessors(); proc++ {
		assert.ElementsMatch(t, p.ActorsOn(proc), p.ProcSched[proc].Elements())
	}
}

func TestNew_Weights(t *testing.T) {
	m := load(t)
	c := constraint.NewChecker(m.Apps, m.Platform, rng.New(1))
	ev, err := fitness.NewEvaluator(sim.New(m), c, m.Apps, fitness.Genetic, []int64{1, 1, 1})
	require.NoError(t, err)

	_, err = individual.New(0, m.Apps, m.Platform, c, ev, individual.Params{Weights: []float64{1, 1}})
	assert.ErrorIs(t, err, fitness.ErrWeightLength)
}

func TestIndividual_RandomInitIsSymmetryBroken(t *testing.T) {
	m := load(t)
	for seed := int64(1); seed <= 20; seed++ {
		in := newIndividual(t, m, sim.New(m), seed, 0)
		cur := in.Current()
		assert.Zero(t, cur.AppGroup[0])
		assertWellFormed(t, m, cur)
	}
}

func TestIndividual_Generations(t *testing.T) {
	m := load(t)
	a := newIndividual(t, m, sim.New(m), 7, 0)
	b := newIndividual(t, m, sim.New(m), 8, 0)

	for gen := 0; gen < 20; gen++ {
		require.NoError(t, a.CalcFitness(), "generation %d", gen)
		require.NoError(t, b.CalcFitness(), "generation %d", gen)
		assert.Len(t, a.Current().Fitness, 3)

		if b.Dominates(a) {
			a.SetBestGlobal(b.Current())
		}
		require.NoError(t, a.Update())
		require.NoError(t, b.Update())
		assertWellFormed(t, m, a.Current())
		assertWellFormed(t, m, b.Current())
	}

	best := a.BestLocal()
	require.NotNil(t, best)
	assert.False(t, best.Empty())
}

type stalled struct{}

func (stalled) Periods() []int64 { return []int64{-1, -1} }
func (stalled) Energy() int64    { return -1 }
func (stalled) Slack() []int64   { return []int64{-5, 0} }

func TestIndividual_ReinitAfterInvalidMoves(t *testing.T) {
	m := load(t)
	engine := fitness.EngineFunc(func(fitness.Design) (fitness.Simulator, error) { return stalled{}, nil })
	in := newIndividual(t, m, engine, 9, 2)

	for i := 0; i < 3; i++ {
		require.NoError(t, in.CalcFitness())
	}
	assert.Equal(t, 3, in.InvalidMoves())
	assert.Positive(t, in.Current().Fitness[0])

	require.NoError(t, in.Update())
	assert.Zero(t, in.InvalidMoves())
	assert.True(t, in.Current().Empty())
	assertWellFormed(t, m, in.Current())
}

// crowded has four single-chain applications on two processors.
func crowded(t *testing.T) *model.Model {
	t.Helper()
	doc := model.Document{
		Platform: model.Platform{
			TDMASlots:  4,
			SlotLength: 1,
			Processors: []model.Processor{
				{Name: "p0", Modes: []model.Mode{{Speed: 100, Power: 2}, {Speed: 50, Power: 1}}},
				{Name: "p1", Modes: []model.Mode{{Speed: 100, Power: 2}}},
			},
		},
	}
	for app := 0; app < 4; app++ {
		doc.Applications = append(doc.Applications, model.Application{Name: fmt.Sprintf("app%d", app)})
		doc.Actors = append(doc.Actors,
			model.Actor{App: app, WCET: 10, Memory: 4},
			model.Actor{App: app, WCET: 5, Memory: 4})
		doc.Channels = append(doc.Channels, model.Channel{Src: 2 * app, Dst: 2*app + 1, TokenSize: 1})
	}
	m, err := doc.Build()
	require.NoError(t, err)

	return m
}

func TestIndividual_MoreAppsThanProcessors(t *testing.T) {
	m := crowded(t)
	for seed := int64(1); seed <= 50; seed++ {
		c := constraint.NewChecker(m.Apps, m.Platform, rng.New(seed))
		ev, err := fitness.NewEvaluator(sim.New(m), c, m.Apps, fitness.Genetic, []int64{100, 100, 100, 100, 10})
		require.NoError(t, err)
		in, err := individual.New(int(seed), m.Apps, m.Platform, c, ev, individual.Params{
			Weights: []float64{1, 1, 1, 1, 0.1},
		})
		require.NoError(t, err)
		assertWellFormed(t, m, in.Current())

		for gen := 0; gen < 5; gen++ {
			require.NoError(t, in.CalcFitness(), "seed %d generation %d", seed, gen)
			require.NoError(t, in.Update())
			assertWellFormed(t, m, in.Current())
		}
	}
}
