package constraint

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/schedule"
)

// family selects one schedule family of a position.
type family uint8

const (
	execFamily family = iota
	sendFamily
	recFamily
)

func (f family) of(p *position.Position, proc int) *schedule.Schedule {
	switch f {
	case sendFamily:
		return p.SendSched[proc]
	case recFamily:
		return p.RecSched[proc]
	default:
		return p.ProcSched[proc]
	}
}

func (f family) String() string {
	switch f {
	case sendFamily:
		return "send"
	case recFamily:
		return "rec"
	default:
		return "exec"
	}
}

// pairCheck reports whether elements a (index i) and b (index j) of s violate
// a relation.
type pairCheck func(p *position.Position, s *schedule.Schedule, i, j, a, b int) (bool, error)

// sweep visits every unordered pair of every processor's schedule in family
// f, counting hits of check. With fix set, each hit swaps the pair's ranks
// before the sweep continues.
func (c *Checker) sweep(p *position.Position, f family, rel string, check pairCheck, fix bool) (int, error) {
	cnt := 0
	for proc := 0; proc < c.numProcs; proc++ {
		s := f.of(p, proc)
		elems := s.Elements()
		for i := 0; i < len(elems); i++ {
			for j := i + 1; j < len(elems); j++ {
				hit, err := check(p, s, i, j, elems[i], elems[j])
				if err != nil {
					return cnt, fmt.Errorf("%s order, processor %d: %w", rel, proc, err)
				}
				if !hit {
					continue
				}
				cnt++
				if !fix {
					continue
				}
				if err = s.Swap(i, j); err != nil {
					return cnt, err
				}
				c.log.WithFields(logrus.Fields{
					"relation":  rel,
					"family":    f.String(),
					"processor": proc,
					"a":         elems[i],
					"b":         elems[j],
				}).Debug("swapped ranks")
			}
		}
	}

	return cnt, nil
}

// execPair: a dependant scheduled first, or an initial-token channel whose
// consumer is not scheduled before its producer.
func (c *Checker) execPair(_ *position.Position, s *schedule.Schedule, i, j, a, b int) (bool, error) {
	if a >= c.numActors || b >= c.numActors {
		return false, nil
	}
	ra, err := s.RankAt(i)
	if err != nil {
		return false, err
	}
	rb, err := s.RankAt(j)
	if err != nil {
		return false, err
	}
	if ra > rb && c.apps.DependsOn(a, b) || rb > ra && c.apps.DependsOn(b, a) {
		return true, nil
	}
	if c.tokens[[2]int{a, b}] > 0 && ra < rb || c.tokens[[2]int{b, a}] > 0 && rb < ra {
		return true, nil
	}

	return false, nil
}

// sendPair: co-mapped sources must send in their firing order.
func (c *Checker) sendPair(p *position.Position, s *schedule.Schedule, i, j, a, b int) (bool, error) {
	if a >= c.numChannels || b >= c.numChannels {
		return false, nil
	}
	srcA, _ := c.apps.ChannelEnds(a)
	srcB, _ := c.apps.ChannelEnds(b)

	return c.followsFiring(p, s, i, j, srcA, srcB)
}

// destPair: channels whose destinations share a processor must be ordered
// like their destinations' firings. Used on send schedules (processor-level
// receive order) and on receive schedules.
func (c *Checker) destPair(p *position.Position, s *schedule.Schedule, i, j, a, b int) (bool, error) {
	if a >= c.numChannels || b >= c.numChannels {
		return false, nil
	}
	_, dstA := c.apps.ChannelEnds(a)
	_, dstB := c.apps.ChannelEnds(b)

	return c.followsFiring(p, s, i, j, dstA, dstB)
}

// followsFiring reports whether the ranks of indices i and j in s disagree
// with the firing order of actors x and y, provided both run on one processor.
func (c *Checker) followsFiring(p *position.Position, s *schedule.Schedule, i, j, x, y int) (bool, error) {
	if x == y || p.Processor(x) != p.Processor(y) {
		return false, nil
	}
	_, rx, err := c.execRank(p, x)
	if err != nil {
		return false, err
	}
	_, ry, err := c.execRank(p, y)
	if err != nil {
		return false, err
	}
	ri, err := s.RankAt(i)
	if err != nil {
		return false, err
	}
	rj, err := s.RankAt(j)
	if err != nil {
		return false, err
	}

	return rx < ry && ri > rj || rx > ry && ri < rj, nil
}

// CountExec counts execution-order violations.
func (c *Checker) CountExec(p *position.Position) (int, error) {
	return c.sweep(p, execFamily, "exec", c.execPair, false)
}

// CountSend counts send-order violations.
func (c *Checker) CountSend(p *position.Position) (int, error) {
	return c.sweep(p, sendFamily, "send", c.sendPair, false)
}

// CountProcRec counts processor-level receive-order violations.
func (c *Checker) CountProcRec(p *position.Position) (int, error) {
	return c.sweep(p, sendFamily, "proc-rec", c.destPair, false)
}

// CountRec counts receive-order violations.
func (c *Checker) CountRec(p *position.Position) (int, error) {
	return c.sweep(p, recFamily, "rec", c.destPair, false)
}

// Count clamps every rank vector, then counts all four relations and runs
// the whole-system deadlock check.
func (c *Checker) Count(p *position.Position) (Counts, error) {
	var (
		out Counts
		err error
	)
	if err = c.checkShape(p); err != nil {
		return out, err
	}
	c.clampAll(p)
	if out.Exec, err = c.CountExec(p); err != nil {
		return out, err
	}
	if out.Send, err = c.CountSend(p); err != nil {
		return out, err
	}
	if out.ProcRec, err = c.CountProcRec(p); err != nil {
		return out, err
	}
	if out.Rec, err = c.CountRec(p); err != nil {
		return out, err
	}
	out.Deadlock, err = c.CrossProcDeadlock(p)

	return out, err
}

// Estimate is Count with short-circuits: communication relations are only
// counted when execution order is clean, and deadlock is only checked when
// every relation is clean.
func (c *Checker) Estimate(p *position.Position) (Counts, error) {
	var (
		out Counts
		err error
	)
	if err = c.checkShape(p); err != nil {
		return out, err
	}
	c.clampAll(p)
	if out.Exec, err = c.CountExec(p); err != nil || out.Exec > 0 {
		return out, err
	}
	if out.Send, err = c.CountSend(p); err != nil {
		return out, err
	}
	if out.ProcRec, err = c.CountProcRec(p); err != nil {
		return out, err
	}
	if out.Rec, err = c.CountRec(p); err != nil {
		return out, err
	}
	if out.Total() > 0 {
		return out, nil
	}
	out.Deadlock, err = c.CrossProcDeadlock(p)

	return out, err
}

// Violations returns the total violation count using the configured mode.
func (c *Checker) Violations(p *position.Position) (int, error) {
	count := c.Count
	if c.estimate {
		count = c.Estimate
	}
	n, err := count(p)

	return n.Total(), err
}
