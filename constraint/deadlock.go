package constraint

import (
	"fmt"

	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/schedule"
)

// CrossProcDeadlock simulates one iteration of all applications against the
// execution schedules. An actor fires when all its predecessors have fired
// and it is next on its processor. The smallest such actor fires first.
// The result is true when some actor is ready but no processor will ever
// pick it; Stuck then lists the ready set.
func (c *Checker) CrossProcDeadlock(p *position.Position) (bool, error) {
	c.stuck = nil
	if err := c.checkShape(p); err != nil {
		return false, err
	}

	canFire := map[int]bool{}
	for app := 0; app < c.apps.NumApps(); app++ {
		for _, r := range c.apps.Roots(app) {
			canFire[r] = true
		}
	}
	next := map[int]bool{}
	for proc := 0; proc < c.numProcs; proc++ {
		next[p.ProcSched[proc].First()] = true
	}
	fired := map[int]bool{}

	for {
		a, ok := minCommon(canFire, next)
		if !ok {
			break
		}
		delete(canFire, a)
		delete(next, a)
		fired[a] = true

		proc, _, err := c.execRank(p, a)
		if err != nil {
			return false, err
		}
		n, err := p.ProcSched[proc].Next(a)
		if err != nil {
			return false, fmt.Errorf("deadlock: %w", err)
		}
		next[n] = true

		for _, s := range c.apps.Successors(a) {
			if !fired[s] && c.allFired(s, fired) {
				canFire[s] = true
			}
		}
	}
	if len(canFire) > 0 {
		c.stuck = sortedKeys(canFire)
		return true, nil
	}

	return false, nil
}

func (c *Checker) allFired(a int, fired map[int]bool) bool {
	for _, q := range c.apps.Predecessors(a) {
		if !fired[q] {
			return false
		}
	}

	return true
}

// AppDeadlock runs the firing simulation for a single application. Each
// processor offers its next actor of that application, skipping the others,
// and a fired actor releases all its successors regardless of their other
// predecessors.
func (c *Checker) AppDeadlock(p *position.Position, app int) (bool, error) {
	c.stuck = nil
	if err := c.checkShape(p); err != nil {
		return false, err
	}

	canFire := map[int]bool{}
	for _, r := range c.apps.Roots(app) {
		canFire[r] = true
	}
	next := map[int]bool{}
	for proc := 0; proc < c.numProcs; proc++ {
		s := p.ProcSched[proc]
		first := s.First()
		if first < c.numActors && c.apps.AppOf(first) == app {
			next[first] = true
			continue
		}
		n, ok, err := c.nextOfApp(s, first, app)
		if err != nil {
			return false, err
		}
		if ok {
			next[n] = true
		}
	}
	fired := map[int]bool{}

	for {
		a, ok := minCommon(canFire, next)
		if !ok {
			break
		}
		delete(canFire, a)
		delete(next, a)
		fired[a] = true

		proc, _, err := c.execRank(p, a)
		if err != nil {
			return false, err
		}
		n, ok, err := c.nextOfApp(p.ProcSched[proc], a, app)
		if err != nil {
			return false, err
		}
		if ok {
			next[n] = true
		}
		for _, s := range c.apps.Successors(a) {
			if !fired[s] {
				canFire[s] = true
			}
		}
	}
	if len(canFire) > 0 {
		c.stuck = sortedKeys(canFire)
		return true, nil
	}

	return false, nil
}

// nextOfApp returns the first actor of app after elem in s.
func (c *Checker) nextOfApp(s *schedule.Schedule, elem, app int) (int, bool, error) {
	if elem >= c.numActors {
		return 0, false, nil
	}
	n, err := s.Next(elem)
	for err == nil && n < c.numActors {
		if c.apps.AppOf(n) == app {
			return n, true, nil
		}
		n, err = s.Next(n)
	}
	if err != nil {
		return 0, false, fmt.Errorf("deadlock: %w", err)
	}

	return 0, false, nil
}

// minCommon returns the smallest key present in both sets.
func minCommon(a, b map[int]bool) (int, bool) {
	best, found := 0, false
	for k := range a {
		if b[k] && (!found || k < best) {
			best, found = k, true
		}
	}

	return best, found
}
