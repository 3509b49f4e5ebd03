package constraint

import (
	"fmt"
	"sort"

	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/rng"
	"github.com/jiankangren/DeSyDe-meta/schedule"
)

// NewChecker returns a Checker drawing randomness from src.
func NewChecker(apps Applications, plat Platform, src *rng.Source, opts ...Option) *Checker {
	c := &Checker{
		apps:        apps,
		plat:        plat,
		src:         src,
		log:         discardLogger(),
		numActors:   apps.NumActors(),
		numChannels: apps.NumChannels(),
		numProcs:    plat.NumProcessors(),
		tokens:      map[[2]int]int64{},
	}
	for _, opt := range opts {
		opt(c)
	}
	for ch := 0; ch < c.numChannels; ch++ {
		if t := apps.TokensOnChannel(ch); t > 0 {
			s, d := apps.ChannelEnds(ch)
			c.tokens[[2]int{s, d}] += t
		}
	}

	return c
}

// Estimating reports whether Violations uses the estimate mode.
func (c *Checker) Estimating() bool { return c.estimate }

// Source returns the checker's random stream.
func (c *Checker) Source() *rng.Source { return c.src }

// Stuck returns the actors that were ready but unschedulable in the last
// detected deadlock, in ascending order.
func (c *Checker) Stuck() []int { return append([]int(nil), c.stuck...) }

// ChannelsBySrc returns the channels whose source actor is mapped to proc.
func (c *Checker) ChannelsBySrc(p *position.Position, proc int) []int {
	var out []int
	for ch := 0; ch < c.numChannels; ch++ {
		s, _ := c.apps.ChannelEnds(ch)
		if p.Processor(s) == proc {
			out = append(out, ch)
		}
	}

	return out
}

// ChannelsByDst returns the channels whose destination actor is mapped to proc.
func (c *Checker) ChannelsByDst(p *position.Position, proc int) []int {
	var out []int
	for ch := 0; ch < c.numChannels; ch++ {
		_, d := c.apps.ChannelEnds(ch)
		if p.Processor(d) == proc {
			out = append(out, ch)
		}
	}

	return out
}

// BuildSchedules replaces all three schedule families with fresh random
// schedules derived from the current mapping.
func (c *Checker) BuildSchedules(p *position.Position) {
	p.ProcSched = make([]*schedule.Schedule, c.numProcs)
	p.SendSched = make([]*schedule.Schedule, c.numProcs)
	p.RecSched = make([]*schedule.Schedule, c.numProcs)
	for proc := 0; proc < c.numProcs; proc++ {
		p.ProcSched[proc] = schedule.New(p.ActorsOn(proc), c.numActors+proc, c.src)
		p.SendSched[proc] = schedule.New(c.ChannelsBySrc(p, proc), c.numChannels+proc, c.src)
		p.RecSched[proc] = schedule.New(c.ChannelsByDst(p, proc), c.numChannels+proc, c.src)
	}
}

// RebuildSchedules re-derives schedule membership from the current mapping.
// Elements that stay on the same processor keep their rank.
func (c *Checker) RebuildSchedules(p *position.Position) error {
	if err := c.checkShape(p); err != nil {
		return err
	}
	for proc := 0; proc < c.numProcs; proc++ {
		p.ProcSched[proc] = p.ProcSched[proc].Rebuild(p.ActorsOn(proc), c.numActors+proc, c.src)
		p.SendSched[proc] = p.SendSched[proc].Rebuild(c.ChannelsBySrc(p, proc), c.numChannels+proc, c.src)
		p.RecSched[proc] = p.RecSched[proc].Rebuild(c.ChannelsByDst(p, proc), c.numChannels+proc, c.src)
	}

	return nil
}

// Traffic returns, per processor, the number of inter-processor channel
// endpoints it carries.
func (c *Checker) Traffic(p *position.Position) []int {
	traffic := make([]int, c.numProcs)
	for ch := 0; ch < c.numChannels; ch++ {
		s, d := c.apps.ChannelEnds(ch)
		ps, pd := p.Processor(s), p.Processor(d)
		if ps == pd || !c.validProc(ps) || !c.validProc(pd) {
			continue
		}
		traffic[ps]++
		traffic[pd]++
	}

	return traffic
}

func (c *Checker) validProc(proc int) bool { return proc >= 0 && proc < c.numProcs }

// checkShape verifies the position matches the model and its schedules exist.
func (c *Checker) checkShape(p *position.Position) error {
	if len(p.Mappings) != c.numActors || len(p.Modes) != c.numProcs || len(p.TDMA) != c.numProcs {
		return fmt.Errorf("%d actors, %d processors: %w", len(p.Mappings), len(p.Modes), ErrShape)
	}
	if len(p.ProcSched) != c.numProcs || len(p.SendSched) != c.numProcs || len(p.RecSched) != c.numProcs {
		return ErrMissingSchedule
	}
	for proc := 0; proc < c.numProcs; proc++ {
		if p.ProcSched[proc] == nil || p.SendSched[proc] == nil || p.RecSched[proc] == nil {
			return fmt.Errorf("processor %d: %w", proc, ErrMissingSchedule)
		}
	}

	return nil
}

// execRank returns the execution rank of actor a on its processor.
func (c *Checker) execRank(p *position.Position, a int) (proc, rank int, err error) {
	proc = p.Processor(a)
	if !c.validProc(proc) {
		return proc, -1, fmt.Errorf("actor %d on %d: %w", a, proc, ErrProcessorRange)
	}
	rank, err = p.ProcSched[proc].RankOf(a)

	return proc, rank, err
}

// clampAll brings every rank vector of every family into range.
func (c *Checker) clampAll(p *position.Position) {
	for proc := 0; proc < c.numProcs; proc++ {
		p.ProcSched[proc].Clamp(c.src)
		p.SendSched[proc].Clamp(c.src)
		p.RecSched[proc].Clamp(c.src)
	}
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)

	return out
}
