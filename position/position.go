package position

import (
	"fmt"
	"strings"

	"github.com/jiankangren/DeSyDe-meta/rng"
	"github.com/jiankangren/DeSyDe-meta/schedule"
)

// New returns an unevaluated position sized for the given problem. Mappings
// are unrestricted to processor 0 and schedules are left nil.
func New(numActors, numProcs int, weights []float64, multiObj bool) *Position {
	p := &Position{
		Mappings:  make([]Mapping, numActors),
		Modes:     make([]int, numProcs),
		TDMA:      make([]int, numProcs),
		ProcSched: make([]*schedule.Schedule, numProcs),
		SendSched: make([]*schedule.Schedule, numProcs),
		RecSched:  make([]*schedule.Schedule, numProcs),
		Weights:   append([]float64(nil), weights...),
		MultiObj:  multiObj,
	}
	for i := range p.Mappings {
		p.Mappings[i] = Unrestricted(0)
	}

	return p
}

// NumProcessors returns the number of processors the position spans.
func (p *Position) NumProcessors() int { return len(p.Modes) }

// Clone returns a deep copy; no slice or schedule is shared with p.
func (p *Position) Clone() *Position {
	c := &Position{
		Mappings:   make([]Mapping, len(p.Mappings)),
		Modes:      append([]int(nil), p.Modes...),
		TDMA:       append([]int(nil), p.TDMA...),
		ProcSched:  cloneSchedules(p.ProcSched),
		SendSched:  cloneSchedules(p.SendSched),
		RecSched:   cloneSchedules(p.RecSched),
		Fitness:    append([]int64(nil), p.Fitness...),
		Weights:    append([]float64(nil), p.Weights...),
		MultiObj:   p.MultiObj,
		AppGroup:   append([]int(nil), p.AppGroup...),
		ProcGroup:  append([]int(nil), p.ProcGroup...),
		Violations: p.Violations,
	}
	for i, m := range p.Mappings {
		c.Mappings[i] = m.clone()
	}

	return c
}

func cloneSchedules(in []*schedule.Schedule) []*schedule.Schedule {
	if in == nil {
		return nil
	}
	out := make([]*schedule.Schedule, len(in))
	for i, s := range in {
		if s != nil {
			out[i] = s.Clone()
		}
	}

	return out
}

// Empty reports whether the position has not been evaluated.
func (p *Position) Empty() bool { return len(p.Fitness) == 0 }

// Invalid reports whether any fitness component is negative.
func (p *Position) Invalid() bool {
	for _, f := range p.Fitness {
		if f < 0 {
			return true
		}
	}

	return false
}

// WeightedFitness returns Σ Fitness[i]·Weights[i] over the weighted prefix.
func (p *Position) WeightedFitness() float64 {
	var f float64
	for i, w := range p.Weights {
		if i >= len(p.Fitness) {
			break
		}
		f += float64(p.Fitness[i]) * w
	}

	return f
}

// Dominates reports whether p dominates o.
//
// An empty or invalid p never dominates; a valid p dominates any empty or
// invalid o. Otherwise multi-objective positions compare component-wise
// (every component ≤) and single-objective ones by strictly smaller
// weighted sum.
func (p *Position) Dominates(o *Position) bool {
	if p.Empty() || p.Invalid() {
		return false
	}
	if o == nil || o.Empty() || o.Invalid() {
		return true
	}
	if p.MultiObj {
		for i, f := range p.Fitness {
			if i < len(o.Fitness) && f > o.Fitness[i] {
				return false
			}
		}

		return true
	}

	return p.WeightedFitness() < o.WeightedFitness()
}

// Equal compares fitness: component-wise for multi-objective positions,
// by weighted sum otherwise.
func (p *Position) Equal(o *Position) bool {
	if p.MultiObj {
		if len(p.Fitness) != len(o.Fitness) {
			return false
		}
		for i := range p.Fitness {
			if p.Fitness[i] != o.Fitness[i] {
				return false
			}
		}

		return true
	}

	return p.WeightedFitness() == o.WeightedFitness()
}

// Processor resolves the processor of actor a.
func (p *Position) Processor(a int) int { return p.Mappings[a].Processor() }

// Processors resolves every mapping.
func (p *Position) Processors() []int {
	out := make([]int, len(p.Mappings))
	for i, m := range p.Mappings {
		out[i] = m.Processor()
	}

	return out
}

// ActorsOn returns the actors mapped to proc in ascending order.
func (p *Position) ActorsOn(proc int) []int {
	return actorsOn(p.Processors(), proc)
}

func actorsOn(procs []int, proc int) []int {
	var out []int
	for a, q := range procs {
		if q == proc {
			out = append(out, a)
		}
	}

	return out
}

// Opposite moves every actor to a complementary processor: one that none
// of its currently co-located actors uses under the mapping being built,
// drawn uniformly; if none is left, any eligible processor. Eligible
// processors are the domain of a FromDomain mapping, all processors otherwise.
func (p *Position) Opposite(src *rng.Source) {
	old := p.Processors()
	next := append([]int(nil), old...)
	all := make([]int, p.NumProcessors())
	for i := range all {
		all[i] = i
	}

	for a, m := range p.Mappings {
		eligible := all
		if m.Kind() == KindFromDomain {
			eligible = m.domain
		}
		if len(eligible) == 0 {
			continue
		}
		coLocated := actorsOn(old, old[a])
		var avail []int
		for _, q := range eligible {
			used := false
			for _, c := range coLocated {
				if next[c] == q {
					used = true
					break
				}
			}
			if !used {
				avail = append(avail, q)
			}
		}
		if len(avail) == 0 {
			avail = eligible
		}
		q, _ := src.Pick(avail)
		next[a] = q
		p.Mappings[a] = m.WithIndex(m.IndexOf(q))
	}
}

// String renders mappings, modes, TDMA, schedules and fitness.
func (p *Position) String() string {
	var b strings.Builder
	b.WriteString("mappings:")
	for _, m := range p.Mappings {
		b.WriteByte(' ')
		b.WriteString(m.String())
	}
	fmt.Fprintf(&b, "\nmodes: %v\ntdma: %v\n", p.Modes, p.TDMA)
	writeFamily(&b, "proc_sched", p.ProcSched)
	writeFamily(&b, "send_sched", p.SendSched)
	writeFamily(&b, "rec_sched", p.RecSched)
	fmt.Fprintf(&b, "fitness: %v", p.Fitness)

	return b.String()
}

func writeFamily(b *strings.Builder, name string, fam []*schedule.Schedule) {
	b.WriteString(name)
	b.WriteByte(':')
	for _, s := range fam {
		b.WriteByte(' ')
		if s == nil {
			b.WriteString("[]")
			continue
		}
		b.WriteString(s.String())
	}
	b.WriteByte('\n')
}
