package fitness

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/position"
)

// NewEvaluator returns an Evaluator for the given layout. penalty must hold
// one value per application plus one for energy.
func NewEvaluator(engine Engine, counter Counter, prob Problem, layout Layout, penalty []int64, opts ...Option) (*Evaluator, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if len(penalty) != prob.NumApps()+1 {
		return nil, fmt.Errorf("got %d, want %d: %w", len(penalty), prob.NumApps()+1, ErrPenaltyLength)
	}
	e := &Evaluator{
		engine:  engine,
		counter: counter,
		prob:    prob,
		layout:  layout,
		penalty: append([]int64(nil), penalty...),
		log:     discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// CheckWeights verifies one objective weight per application plus energy.
func CheckWeights(weights []float64, numApps int) error {
	if len(weights) != numApps+1 {
		return fmt.Errorf("got %d, want %d: %w", len(weights), numApps+1, ErrWeightLength)
	}

	return nil
}

// Layout returns the evaluator's vector layout.
func (e *Evaluator) Layout() Layout { return e.layout }

// Design flattens p into a simulator input.
func (e *Evaluator) Design(p *position.Position) (Design, error) {
	procNext, err := Successors(p.ProcSched, e.prob.NumActors())
	if err != nil {
		return Design{}, fmt.Errorf("execution schedules: %w", err)
	}
	sendNext, err := Successors(p.SendSched, e.prob.NumChannels())
	if err != nil {
		return Design{}, fmt.Errorf("send schedules: %w", err)
	}
	recNext, err := Successors(p.RecSched, e.prob.NumChannels())
	if err != nil {
		return Design{}, fmt.Errorf("receive schedules: %w", err)
	}

	return Design{
		Mappings: p.Processors(),
		Modes:    append([]int(nil), p.Modes...),
		TDMA:     append([]int(nil), p.TDMA...),
		ProcNext: procNext,
		SendNext: sendNext,
		RecNext:  recNext,
	}, nil
}

// Evaluate counts p's violations, simulates it and writes p.Fitness and
// p.Violations. On error p.Fitness is left empty.
func (e *Evaluator) Evaluate(p *position.Position) error {
	p.Fitness = nil
	numApps := e.prob.NumApps()

	sched, err := e.counter.Violations(p)
	if err != nil {
		return fmt.Errorf("count violations: %w", err)
	}
	d, err := e.Design(p)
	if err != nil {
		return err
	}
	sim, err := e.engine.Build(d)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	periods := sim.Periods()
	if len(periods) != numApps {
		return fmt.Errorf("%d periods for %d applications: %w", len(periods), numApps, ErrShape)
	}
	mem := 0
	for _, s := range sim.Slack() {
		if s < 0 {
			mem++
		}
	}

	f := make([]int64, e.layout.Len(numApps))
	if sched > 0 {
		pen := e.penalty[:numApps]
		if e.coMapping {
			pen = MappingPenalty(e.penalty, CoMappings(d.Mappings, e.prob.AppOf, numApps))
		}
		for app := 0; app < numApps; app++ {
			f[app] = int64(1+sched) * pen[app]
		}
		f[numApps] = e.penalty[numApps] * int64(sched)
	} else {
		for app, pr := range periods {
			switch {
			case pr > 0:
				f[app] = pr
			case mem == 0:
				return fmt.Errorf("application %d period %d: %w", app, pr, ErrInconsistentPeriod)
			case e.layout == Genetic:
				f[app] = Unbounded
			default:
				f[app] = pr
			}
		}
		f[numApps] = sim.Energy()
		if f[numApps] < 0 && e.layout == Genetic {
			f[numApps] = Unbounded
		}
	}
	if e.layout == Swarm {
		f[numApps+1] = int64(mem)
	}

	p.Fitness = f
	p.Violations = sched + mem
	e.log.WithFields(logrus.Fields{
		"layout":     e.layout.String(),
		"violations": sched,
		"memory":     mem,
		"fitness":    f,
	}).Trace("evaluated")

	return nil
}
