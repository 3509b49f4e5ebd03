package particle

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/constraint"
	"github.com/jiankangren/DeSyDe-meta/fitness"
	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/rng"
	"github.com/jiankangren/DeSyDe-meta/schedule"
)

// New returns a randomly initialised, unevaluated particle. The checker's
// random source drives every random choice of the particle.
func New(id int, apps constraint.Applications, plat constraint.Platform, checker *constraint.Checker,
	eval *fitness.Evaluator, params Params, opts ...Option) (*Particle, error) {
	if err := fitness.CheckWeights(params.Weights, apps.NumApps()); err != nil {
		return nil, err
	}
	if n := eval.Layout().Len(apps.NumApps()); params.Objective < 0 || params.Objective >= n {
		return nil, fmt.Errorf("objective %d of %d: %w", params.Objective, n, ErrObjective)
	}
	if params.InvalidLimit <= 0 {
		params.InvalidLimit = DefaultInvalidLimit
	}
	p := &Particle{
		id:      id,
		apps:    apps,
		plat:    plat,
		checker: checker,
		eval:    eval,
		params:  params,
		log:     discardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.Reinit(); err != nil {
		return nil, err
	}

	return p, nil
}

// Reinit draws a fresh random position and zeroes the velocity. The
// personal best survives.
func (p *Particle) Reinit() error {
	src := p.checker.Source()
	numProcs := p.plat.NumProcessors()
	cur := position.New(p.apps.NumActors(), numProcs, p.params.Weights, p.params.MultiObj)
	for a := range cur.Mappings {
		cur.Mappings[a] = position.Unrestricted(src.Intn(numProcs))
	}
	for proc := 0; proc < numProcs; proc++ {
		cur.Modes[proc] = src.Intn(p.plat.NumModes(proc))
		cur.TDMA[proc] = src.Between(0, p.plat.TDMASlotBudget())
	}
	p.checker.BuildSchedules(cur)
	if err := p.checker.Repair(cur); err != nil {
		return fmt.Errorf("particle %d: %w", p.id, err)
	}

	p.cur = cur
	p.speed = position.NewSpeed(p.apps.NumActors(), p.apps.NumChannels(), numProcs)
	p.invalid = 0

	return nil
}

// CalcFitness evaluates the current position, updates the personal best
// and the invalid-move counter.
func (p *Particle) CalcFitness() error {
	if err := p.eval.Evaluate(p.cur); err != nil {
		return fmt.Errorf("particle %d: %w", p.id, err)
	}
	if p.improves(p.cur) {
		p.bestLocal = p.cur.Clone()
	}
	if p.cur.Fitness[0] < 0 {
		p.invalid++
	} else {
		p.invalid = 0
	}

	return nil
}

// improves reports whether c should replace the personal best, judged on
// the particle's objective. A position with violations never replaces one
// without.
func (p *Particle) improves(c *position.Position) bool {
	b, obj := p.bestLocal, p.params.Objective
	if b == nil || b.Empty() {
		return true
	}
	f, bf := c.Fitness[obj], b.Fitness[obj]
	switch {
	case c.Violations > 0 && b.Violations == 0:
		return false
	case c.Violations == 0 && b.Violations > 0:
		return f >= 0
	case bf < 0 && f > 0:
		return true
	case f < 0:
		return false
	default:
		return f < bf
	}
}

// Update moves the particle one step, reinitialising it first when it has
// been invalid too long.
func (p *Particle) Update() error {
	if p.invalid > p.params.InvalidLimit {
		p.log.WithFields(logrus.Fields{"particle": p.id, "invalid": p.invalid}).Debug("reinitialising")
		if err := p.Reinit(); err != nil {
			return err
		}
	}
	if err := p.updateSpeed(); err != nil {
		return fmt.Errorf("particle %d: %w", p.id, err)
	}
	if err := p.move(); err != nil {
		return fmt.Errorf("particle %d: %w", p.id, err)
	}

	return nil
}

// updateSpeed applies the velocity rule. A missing personal best falls back
// to the current position, a missing global best to the personal best.
func (p *Particle) updateSpeed() error {
	src := p.checker.Source()
	cur := p.cur
	local := p.bestLocal
	if local == nil {
		local = cur
	}
	global := p.bestGlobal
	if global == nil {
		global = local
	}
	y1, y2 := src.Weight(), src.Weight()
	ws, wl, wg := p.params.Inertia, p.params.LocalWeight, p.params.GlobalWeight
	step := func(v float64, l, g, c int) float64 {
		return ws*v + y1*wl*float64(l-c) + y2*wg*float64(g-c)
	}

	sp := p.speed
	for i := range sp.Mappings {
		sp.Mappings[i] = step(sp.Mappings[i], local.Mappings[i].Index(), global.Mappings[i].Index(), cur.Mappings[i].Index())
	}
	for i := range sp.Modes {
		sp.Modes[i] = step(sp.Modes[i], local.Modes[i], global.Modes[i], cur.Modes[i])
	}
	for i := range sp.TDMA {
		sp.TDMA[i] = step(sp.TDMA[i], local.TDMA[i], global.TDMA[i], cur.TDMA[i])
	}

	for a := range sp.ProcSched {
		r, err := ranks(execRank, a, cur, local, global)
		if err != nil {
			return err
		}
		sp.ProcSched[a] = step(sp.ProcSched[a], r[1], r[2], r[0])
	}
	for ch := range sp.SendSched {
		s, d := p.apps.ChannelEnds(ch)
		r, err := ranks(sendRank(s), ch, cur, local, global)
		if err != nil {
			return err
		}
		sp.SendSched[ch] = step(sp.SendSched[ch], r[1], r[2], r[0])
		if r, err = ranks(recRank(d), ch, cur, local, global); err != nil {
			return err
		}
		sp.RecSched[ch] = step(sp.RecSched[ch], r[1], r[2], r[0])
	}
	sp.ApplyBounds(p.plat.NumProcessors())

	return nil
}

// rankFn locates element e in one schedule family of x.
type rankFn func(x *position.Position, e int) (int, error)

func execRank(x *position.Position, a int) (int, error) {
	return familyRank(x.ProcSched, x.Processor(a), a)
}

func sendRank(src int) rankFn {
	return func(x *position.Position, ch int) (int, error) {
		return familyRank(x.SendSched, x.Processor(src), ch)
	}
}

func recRank(dst int) rankFn {
	return func(x *position.Position, ch int) (int, error) {
		return familyRank(x.RecSched, x.Processor(dst), ch)
	}
}

func familyRank(fam []*schedule.Schedule, proc, e int) (int, error) {
	if proc < 0 || proc >= len(fam) || fam[proc] == nil {
		return 0, fmt.Errorf("element %d on processor %d: %w", e, proc, constraint.ErrProcessorRange)
	}

	return fam[proc].RankOf(e)
}

// ranks returns e's rank in cur, local and global.
func ranks(f rankFn, e int, xs ...*position.Position) ([3]int, error) {
	var out [3]int
	for i, x := range xs {
		r, err := f(x, e)
		if err != nil {
			return out, err
		}
		out[i] = r
	}

	return out, nil
}

// move adds the rounded velocity to the current position and repairs it.
func (p *Particle) move() error {
	src := p.checker.Source()
	cur, sp := p.cur, p.speed
	if err := sp.Fits(cur, p.apps.NumChannels()); err != nil {
		return err
	}
	numProcs := p.plat.NumProcessors()
	for i, m := range cur.Mappings {
		cur.Mappings[i] = m.WithIndex(m.Index() + src.Round(sp.Mappings[i])).Clamp(numProcs)
	}
	for i := range cur.Modes {
		cur.Modes[i] += src.Round(sp.Modes[i])
	}
	for i := range cur.TDMA {
		cur.TDMA[i] += src.Round(sp.TDMA[i])
	}
	if err := p.checker.RebuildSchedules(cur); err != nil {
		return err
	}

	for proc := 0; proc < numProcs; proc++ {
		if err := moveSchedule(cur.ProcSched[proc], sp.ProcSched, src); err != nil {
			return err
		}
		if err := moveSchedule(cur.SendSched[proc], sp.SendSched, src); err != nil {
			return err
		}
		if err := moveSchedule(cur.RecSched[proc], sp.RecSched, src); err != nil {
			return err
		}
	}

	return p.checker.Repair(cur)
}

// moveSchedule applies the per-element velocity v to s.
func moveSchedule(s *schedule.Schedule, v []float64, src *rng.Source) error {
	elems := s.Elements()
	speed := make([]float64, len(elems))
	for i, e := range elems {
		speed[i] = v[e]
	}

	return s.Move(speed, src)
}
