package model

import (
	"errors"
	"fmt"

	"github.com/jiankangren/DeSyDe-meta/core"
	"github.com/jiankangren/DeSyDe-meta/dfs"
)

// zeroTokens selects the channels that impose a firing precedence.
func zeroTokens(e *core.Edge) bool { return e.Weight == 0 }

// NewApplications validates the inputs and builds the dependency oracle.
//
// Returns ErrNoApplications, ErrEmptyApplication, ErrActorApp,
// ErrChannelEndpoint, ErrCrossAppChannel, ErrNegativeValue, ErrZeroWCET or
// ErrZeroTokenCycle (wrapped with context).
// Complexity: O(A·(A+C)) for the closure.
func NewApplications(apps []Application, actors []Actor, channels []Channel) (*Applications, error) {
	if len(apps) == 0 {
		return nil, ErrNoApplications
	}
	a := &Applications{
		apps:     append([]Application(nil), apps...),
		actors:   append([]Actor(nil), actors...),
		channels: append([]Channel(nil), channels...),
		graph:    core.NewGraph(core.WithMultiEdges(), core.WithLoops()),
		byApp:    make([][]int, len(apps)),
	}

	// 1) Actors become vertices.
	for id, act := range a.actors {
		if act.App < 0 || act.App >= len(apps) {
			return nil, fmt.Errorf("actor %d (%s): %w", id, act.Name, ErrActorApp)
		}
		if act.WCET < 0 || act.Memory < 0 {
			return nil, fmt.Errorf("actor %d (%s): %w", id, act.Name, ErrNegativeValue)
		}
		if act.WCET == 0 {
			return nil, fmt.Errorf("actor %d (%s): %w", id, act.Name, ErrZeroWCET)
		}
		if err := a.graph.AddLabeledVertex(id, act.Name); err != nil {
			return nil, fmt.Errorf("actor %d: %w", id, err)
		}
		a.byApp[act.App] = append(a.byApp[act.App], id)
	}
	for app, ids := range a.byApp {
		if len(ids) == 0 {
			return nil, fmt.Errorf("application %d (%s): %w", app, apps[app].Name, ErrEmptyApplication)
		}
	}

	// 2) Channels become edges; edge ids equal channel ids.
	for id, ch := range a.channels {
		if ch.Src < 0 || ch.Src >= len(actors) || ch.Dst < 0 || ch.Dst >= len(actors) {
			return nil, fmt.Errorf("channel %d: %w", id, ErrChannelEndpoint)
		}
		if ch.Tokens < 0 || ch.TokenSize < 0 {
			return nil, fmt.Errorf("channel %d: %w", id, ErrNegativeValue)
		}
		if actors[ch.Src].App != actors[ch.Dst].App {
			return nil, fmt.Errorf("channel %d: %w", id, ErrCrossAppChannel)
		}
		if _, err := a.graph.AddEdge(ch.Src, ch.Dst, ch.Tokens); err != nil {
			return nil, fmt.Errorf("channel %d: %w", id, err)
		}
	}

	// 3) Zero-token channels must form a DAG.
	cyclic, cycle, err := dfs.DetectCycle(a.graph, dfs.WithEdgeFilter(zeroTokens))
	if err != nil {
		return nil, err
	}
	if cyclic {
		return nil, fmt.Errorf("actors %v: %w", cycle, ErrZeroTokenCycle)
	}

	if err = a.buildOracle(); err != nil {
		return nil, err
	}

	return a, nil
}

// buildOracle precomputes closure, neighbor lists and roots.
func (a *Applications) buildOracle() error {
	n := len(a.actors)
	closure, err := dfs.Closure(a.graph, dfs.WithEdgeFilter(zeroTokens))
	if err != nil {
		return fmt.Errorf("closure: %w", err)
	}
	prec := a.graph.Subgraph(zeroTokens)

	a.depends = make([]map[int]bool, n)
	a.succ = make([][]int, n)
	a.pred = make([][]int, n)
	for id := 0; id < n; id++ {
		a.depends[id] = make(map[int]bool, len(closure[id]))
		for _, b := range closure[id] {
			a.depends[id][b] = true
		}
		if a.succ[id], err = prec.Successors(id); err != nil {
			return err
		}
		if a.pred[id], err = prec.Predecessors(id); err != nil {
			return err
		}
	}

	a.roots = make([][]int, len(a.apps))
	for app, ids := range a.byApp {
		for _, id := range ids {
			if len(a.pred[id]) == 0 {
				a.roots[app] = append(a.roots[app], id)
			}
		}
	}

	return nil
}

// NumActors returns the actor count.
func (a *Applications) NumActors() int { return len(a.actors) }

// NumChannels returns the channel count.
func (a *Applications) NumChannels() int { return len(a.channels) }

// NumApps returns the application count.
func (a *Applications) NumApps() int { return len(a.apps) }

// AppOf returns the application of actor id.
func (a *Applications) AppOf(id int) int { return a.actors[id].App }

// Actor returns the descriptor of actor id.
func (a *Applications) Actor(id int) Actor { return a.actors[id] }

// Channel returns the descriptor of channel id.
func (a *Applications) Channel(id int) Channel { return a.channels[id] }

// Application returns the descriptor of application app.
func (a *Applications) Application(app int) Application { return a.apps[app] }

// ActorsOf returns the actors of application app in ascending id order.
func (a *Applications) ActorsOf(app int) []int { return a.byApp[app] }

// DependsOn reports whether b is reachable from a over zero-token channels,
// i.e. a must fire before b within one iteration.
func (a *Applications) DependsOn(x, y int) bool {
	if x < 0 || x >= len(a.depends) {
		return false
	}

	return a.depends[x][y]
}

// ChannelEnds returns the source and destination actor of channel ch.
func (a *Applications) ChannelEnds(ch int) (src, dst int) {
	c := a.channels[ch]

	return c.Src, c.Dst
}

// TokensOnChannel returns the initial token count of channel ch.
func (a *Applications) TokensOnChannel(ch int) int64 { return a.channels[ch].Tokens }

// Roots returns the actors of app without zero-token predecessors.
func (a *Applications) Roots(app int) []int { return a.roots[app] }

// Successors returns the zero-token successors of actor id.
func (a *Applications) Successors(id int) []int { return a.succ[id] }

// Predecessors returns the zero-token predecessors of actor id.
func (a *Applications) Predecessors(id int) []int { return a.pred[id] }

// PeriodConstraint returns the required period of app (0 = unconstrained).
func (a *Applications) PeriodConstraint(app int) int64 { return a.apps[app].Period }

// Graph returns a copy of the underlying actor/channel multigraph.
func (a *Applications) Graph() *core.Graph { return a.graph.Clone() }

// TopologicalOrder returns a precedence-respecting order of all actors.
func (a *Applications) TopologicalOrder() ([]int, error) {
	order, err := dfs.TopologicalSort(a.graph, dfs.WithEdgeFilter(zeroTokens))
	if errors.Is(err, dfs.ErrCycleDetected) {
		return nil, ErrZeroTokenCycle
	}

	return order, err
}
