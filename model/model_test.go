package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiankangren/DeSyDe-meta/model"
)

func TestLoad_TwoApps(t *testing.T) {
	m, err := model.Load("testdata/two_apps.yaml")
	require.NoError(t, err)

	assert.Equal(t, 2, m.Platform.NumProcessors())
	assert.Equal(t, 2, m.Platform.NumModes(0))
	assert.Equal(t, 0, m.Platform.NumModes(5))
	assert.Equal(t, 8, m.Platform.TDMASlotBudget())

	a := m.Apps
	assert.Equal(t, 6, a.NumActors())
	assert.Equal(t, 6, a.NumChannels())
	assert.Equal(t, 2, a.NumApps())
	assert.Equal(t, 1, a.AppOf(5))
	assert.Equal(t, int64(400), a.PeriodConstraint(0))

	src, dst := a.ChannelEnds(4)
	assert.Equal(t, 3, src)
	assert.Equal(t, 0, dst)
	assert.Equal(t, int64(1), a.TokensOnChannel(4))
}

func TestApplications_Oracle(t *testing.T) {
	m, err := model.Load("testdata/two_apps.yaml")
	require.NoError(t, err)
	a := m.Apps

	// transitive over zero-token channels only
	assert.True(t, a.DependsOn(0, 3))
	assert.True(t, a.DependsOn(1, 3))
	assert.False(t, a.DependsOn(3, 0), "token channel is not a precedence")
	assert.False(t, a.DependsOn(1, 2))
	assert.False(t, a.DependsOn(0, 5), "different applications")
	assert.False(t, a.DependsOn(-1, 0))

	assert.Equal(t, []int{1, 2}, a.Successors(0))
	assert.Equal(t, []int{1, 2}, a.Predecessors(3))
	assert.Empty(t, a.Predecessors(0))
	assert.Equal(t, []int{0}, a.Roots(0))
	assert.Equal(t, []int{4}, a.Roots(1))
	assert.Equal(t, []int{4, 5}, a.ActorsOf(1))

	order, err := a.TopologicalOrder()
	require.NoError(t, err)
	pos := map[int]int{}
	for i, v := range order {
		pos[v] = i
	}
	assert.Less(t, pos[0], pos[1])
	assert.Less(t, pos[1], pos[3])
	assert.Less(t, pos[4], pos[5])
}

func TestNewApplications_Errors(t *testing.T) {
	apps := []model.Application{{Name: "a"}}
	two := []model.Actor{{Name: "x", WCET: 1}, {Name: "y", WCET: 1}}

	cases := []struct {
		name     string
		apps     []model.Application
		actors   []model.Actor
		channels []model.Channel
		want     error
	}{
		{"no apps", nil, two, nil, model.ErrNoApplications},
		{"unknown app", apps, []model.Actor{{App: 3}}, nil, model.ErrActorApp},
		{"empty app", []model.Application{{}, {}}, two, nil, model.ErrEmptyApplication},
		{"endpoint", apps, two, []model.Channel{{Src: 0, Dst: 7}}, model.ErrChannelEndpoint},
		{"negative tokens", apps, two, []model.Channel{{Src: 0, Dst: 1, Tokens: -1}}, model.ErrNegativeValue},
		{"negative wcet", apps, []model.Actor{{WCET: -2}}, nil, model.ErrNegativeValue},
		{"zero wcet", apps, []model.Actor{{Name: "idle"}}, nil, model.ErrZeroWCET},
		{"cross app", []model.Application{{}, {}}, []model.Actor{{App: 0, WCET: 1}, {App: 1, WCET: 1}},
			[]model.Channel{{Src: 0, Dst: 1}}, model.ErrCrossAppChannel},
		{"zero-token cycle", apps, two,
			[]model.Channel{{Src: 0, Dst: 1}, {Src: 1, Dst: 0}}, model.ErrZeroTokenCycle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.NewApplications(tc.apps, tc.actors, tc.channels)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewApplications_TokenCycleAllowed(t *testing.T) {
	a, err := model.NewApplications(
		[]model.Application{{Name: "loop"}},
		[]model.Actor{{Name: "x", WCET: 1}, {Name: "y", WCET: 1}},
		[]model.Channel{{Src: 0, Dst: 1}, {Src: 1, Dst: 0, Tokens: 2}},
	)
	require.NoError(t, err)
	assert.True(t, a.DependsOn(0, 1))
	assert.False(t, a.DependsOn(1, 0))
}

func TestPlatform_Validate(t *testing.T) {
	good := model.Platform{
		Processors: []model.Processor{{Name: "p", Modes: []model.Mode{{Speed: 100, Power: 1}}}},
		TDMASlots:  2,
		SlotLength: 1,
	}
	require.NoError(t, good.Validate())
	assert.Equal(t, model.Mode{Speed: 100, Power: 1}, good.Mode(0, 7))

	empty := model.Platform{SlotLength: 1}
	assert.ErrorIs(t, empty.Validate(), model.ErrNoProcessors)

	noModes := good
	noModes.Processors = []model.Processor{{Name: "p"}}
	assert.ErrorIs(t, noModes.Validate(), model.ErrNoModes)

	badMode := good
	badMode.Processors = []model.Processor{{Modes: []model.Mode{{Speed: 0}}}}
	assert.ErrorIs(t, badMode.Validate(), model.ErrBadMode)

	badSlots := good
	badSlots.SlotLength = 0
	assert.ErrorIs(t, badSlots.Validate(), model.ErrBadTDMA)
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := model.Decode(strings.NewReader("platform:\n  bogus: 1\n"))
	assert.Error(t, err)
}
