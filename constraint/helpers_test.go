package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jiankangren/DeSyDe-meta/constraint"
	"github.com/jiankangren/DeSyDe-meta/model"
	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/rng"
	"github.com/jiankangren/DeSyDe-meta/schedule"
)

// platform returns n single-mode processors sharing a slot budget.
func platform(n, slots int) *model.Platform {
	p := &model.Platform{TDMASlots: slots, SlotLength: 1}
	for i := 0; i < n; i++ {
		p.Processors = append(p.Processors, model.Processor{
			Name:  "p",
			Modes: []model.Mode{{Speed: 100, Power: 1}, {Speed: 50, Power: 0.5}},
		})
	}

	return p
}

// apps builds applications from actor→app assignments and channels.
func apps(t *testing.T, actorApps []int, channels ...model.Channel) *model.Applications {
	t.Helper()
	nApps := 0
	actors := make([]model.Actor, len(actorApps))
	for i, a := range actorApps {
		actors[i] = model.Actor{App: a, WCET: 10}
		if a+1 > nApps {
			nApps = a + 1
		}
	}
	a, err := model.NewApplications(make([]model.Application, nApps), actors, channels)
	require.NoError(t, err)

	return a
}

func ch(src, dst int) model.Channel { return model.Channel{Src: src, Dst: dst, TokenSize: 1} }

// mapped returns a position with the given unrestricted mapping and
// schedules built by the checker.
func mapped(c *constraint.Checker, numProcs int, procs []int) *position.Position {
	p := position.New(len(procs), numProcs, nil, false)
	for a, q := range procs {
		p.Mappings[a] = position.Unrestricted(q)
	}
	c.BuildSchedules(p)

	return p
}

// ordered replaces one schedule with an explicit order.
func ordered(order []int, dummy int) *schedule.Schedule {
	return schedule.FromOrder(order, dummy)
}

func newChecker(a *model.Applications, plat *model.Platform, seed int64, opts ...constraint.Option) *constraint.Checker {
	return constraint.NewChecker(a, plat, rng.New(seed), opts...)
}
