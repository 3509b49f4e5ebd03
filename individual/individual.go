package individual

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/constraint"
	"github.com/jiankangren/DeSyDe-meta/fitness"
	"github.com/jiankangren/DeSyDe-meta/position"
)

// DefaultInvalidLimit is the number of consecutive invalid evaluations
// tolerated before reinitialisation.
const DefaultInvalidLimit = 30

// Params configure one individual.
type Params struct {
	// Objective selects the global-best member handed to this individual.
	Objective int

	// InvalidLimit defaults to DefaultInvalidLimit when zero.
	InvalidLimit int

	Weights  []float64
	MultiObj bool
}

// Option configures an Individual.
type Option func(*Individual)

// WithLogger sets the individual's logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(in *Individual) {
		if l != nil {
			in.log = l
		}
	}
}

// Individual is one genetic agent. It is not safe for concurrent use.
type Individual struct {
	id      int
	apps    constraint.Applications
	plat    constraint.Platform
	checker *constraint.Checker
	eval    *fitness.Evaluator
	params  Params
	log     logrus.FieldLogger

	cur        *position.Position
	best       *position.Position
	bestGlobal *position.Position
	invalid    int
}

// New returns a randomly initialised, unevaluated individual.
func New(id int, apps constraint.Applications, plat constraint.Platform, checker *constraint.Checker,
	eval *fitness.Evaluator, params Params, opts ...Option) (*Individual, error) {
	if err := fitness.CheckWeights(params.Weights, apps.NumApps()); err != nil {
		return nil, err
	}
	if params.InvalidLimit <= 0 {
		params.InvalidLimit = DefaultInvalidLimit
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	in := &Individual{
		id:      id,
		apps:    apps,
		plat:    plat,
		checker: checker,
		eval:    eval,
		params:  params,
		log:     l,
	}
	for _, opt := range opts {
		opt(in)
	}
	if err := in.Reinit(); err != nil {
		return nil, err
	}

	return in, nil
}

// Reinit draws a fresh symmetry-broken random position.
func (in *Individual) Reinit() error {
	src := in.checker.Source()
	numApps, numProcs := in.apps.NumApps(), in.plat.NumProcessors()
	cur := position.New(in.apps.NumActors(), numProcs, in.params.Weights, in.params.MultiObj)

	// 1) application groups, then processors over the used groups
	cur.AppGroup = make([]int, numApps)
	for app := range cur.AppGroup {
		cur.AppGroup[app] = src.Between(0, app)
	}
	cur.ProcGroup = append([]int(nil), cur.AppGroup...)
	for len(cur.ProcGroup) < numProcs {
		g, _ := src.Pick(cur.AppGroup)
		cur.ProcGroup = append(cur.ProcGroup, g)
	}
	src.Shuffle(cur.ProcGroup)
	cur.ProcGroup = cur.ProcGroup[:numProcs]

	// 2) actors within their group's domain
	domains := constraint.Domains(cur.ProcGroup, numApps)
	for a := range cur.Mappings {
		g := cur.AppGroup[in.apps.AppOf(a)]
		cur.Mappings[a] = position.FromDomain(g, domains[g], src.Intn(len(domains[g])))
	}

	// 3) modes, slots, schedules
	for proc := 0; proc < numProcs; proc++ {
		cur.Modes[proc] = src.Intn(in.plat.NumModes(proc))
		cur.TDMA[proc] = src.Between(0, in.plat.TDMASlotBudget())
	}
	in.checker.BuildSchedules(cur)
	if err := in.checker.Repair(cur); err != nil {
		return fmt.Errorf("individual %d: %w", in.id, err)
	}

	in.cur = cur
	in.invalid = 0

	return nil
}

// CalcFitness evaluates the current position and tracks the best one seen.
func (in *Individual) CalcFitness() error {
	if err := in.eval.Evaluate(in.cur); err != nil {
		return fmt.Errorf("individual %d: %w", in.id, err)
	}
	if in.best == nil || in.cur.Dominates(in.best) {
		in.best = in.cur.Clone()
	}
	if in.cur.Fitness[0] < 0 || in.cur.Violations > 0 {
		in.invalid++
	} else {
		in.invalid = 0
	}

	return nil
}

// Update reinitialises a stagnated individual, otherwise applies the
// opposition move and repairs.
func (in *Individual) Update() error {
	if in.invalid > in.params.InvalidLimit {
		in.log.WithFields(logrus.Fields{"individual": in.id, "invalid": in.invalid}).Debug("reinitialising")
		return in.Reinit()
	}
	in.cur.Opposite(in.checker.Source())
	in.checker.BuildSchedules(in.cur)
	if err := in.checker.Repair(in.cur); err != nil {
		return fmt.Errorf("individual %d: %w", in.id, err)
	}

	return nil
}

// Dominates reports whether in's current position dominates o's.
func (in *Individual) Dominates(o *Individual) bool { return in.cur.Dominates(o.cur) }
