package constraint

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/position"
)

// Repair runs every phase in order: mapping, modes, TDMA, execution order,
// send order, processor-level receive order, send order again, receive
// order. Schedules must already exist; if the mapping phase moves an actor,
// the schedules are rebuilt keeping the ranks of unmoved elements.
func (c *Checker) Repair(p *position.Position) error {
	if err := c.checkShape(p); err != nil {
		return err
	}
	before := p.Processors()
	c.RepairMapping(p)
	if !slices.Equal(before, p.Processors()) {
		if err := c.RebuildSchedules(p); err != nil {
			return err
		}
	}
	c.RepairModes(p)
	c.RepairTDMA(p)
	c.clampAll(p)

	phases := []struct {
		name string
		run  func(*position.Position) (int, error)
	}{
		{"exec", c.RepairExec},
		{"send", c.RepairSend},
		{"proc-rec", c.RepairProcRec},
		{"send", c.RepairSend},
		{"rec", c.RepairRec},
	}
	fields := logrus.Fields{}
	for _, ph := range phases {
		n, err := ph.run(p)
		if err != nil {
			return err
		}
		fields[ph.name] = n
	}
	c.log.WithFields(fields).Debug("repair pass")

	return nil
}

// RepairMapping clamps plain mappings into the processor range, or runs
// the domain repair when the position carries symmetry groups.
func (c *Checker) RepairMapping(p *position.Position) {
	if p.AppGroup != nil {
		c.RepairDomains(p)
		return
	}
	for a, m := range p.Mappings {
		p.Mappings[a] = m.Clamp(c.numProcs)
	}
}

// RepairModes clamps every processor mode into [0,numModes).
func (c *Checker) RepairModes(p *position.Position) {
	for proc := range p.Modes {
		p.Modes[proc] = clamp(p.Modes[proc], 0, c.plat.NumModes(proc)-1)
	}
}

// RepairTDMA enforces the slot invariants: allocations in [0,budget], zero
// without inter-processor traffic, at least one with traffic, and a total
// within budget. Excess is removed one slot at a time, round-robin, from
// allocations above one; if the budget is smaller than the number of
// processors with traffic, the sum stays above it.
func (c *Checker) RepairTDMA(p *position.Position) {
	budget := c.plat.TDMASlotBudget()
	traffic := c.Traffic(p)
	sum := 0
	for proc := range p.TDMA {
		t := clamp(p.TDMA[proc], 0, budget)
		switch {
		case traffic[proc] == 0:
			t = 0
		case t == 0:
			t = 1
		}
		p.TDMA[proc] = t
		sum += t
	}

	for diff := sum - budget; diff > 0; {
		progressed := false
		for proc := range p.TDMA {
			if p.TDMA[proc] <= 1 {
				continue
			}
			p.TDMA[proc]--
			diff--
			progressed = true
			if diff == 0 {
				break
			}
		}
		if !progressed {
			c.log.WithFields(logrus.Fields{"budget": budget, "excess": diff}).
				Debug("tdma budget below traffic demand")
			break
		}
	}
}

// RepairExec swaps every execution-order violating pair once.
func (c *Checker) RepairExec(p *position.Position) (int, error) {
	return c.sweep(p, execFamily, "exec", c.execPair, true)
}

// RepairSend swaps every send-order violating pair once.
func (c *Checker) RepairSend(p *position.Position) (int, error) {
	return c.sweep(p, sendFamily, "send", c.sendPair, true)
}

// RepairProcRec swaps the send ranks of every processor-level receive-order
// violating pair once.
func (c *Checker) RepairProcRec(p *position.Position) (int, error) {
	return c.sweep(p, sendFamily, "proc-rec", c.destPair, true)
}

// RepairRec swaps every receive-order violating pair once.
func (c *Checker) RepairRec(p *position.Position) (int, error) {
	return c.sweep(p, recFamily, "rec", c.destPair, true)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}

	return v
}
