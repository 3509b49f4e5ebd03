package swarm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jiankangren/DeSyDe-meta/position"
)

// ParetoFront keeps, per objective, the best valid position seen. It is
// safe for concurrent use.
type ParetoFront struct {
	mu      sync.RWMutex
	members []*position.Position
}

// NewParetoFront returns an empty front over numObjectives objectives.
func NewParetoFront(numObjectives int) *ParetoFront {
	return &ParetoFront{members: make([]*position.Position, numObjectives)}
}

// Update offers p to every objective slot and stores a clone wherever p is
// better on that objective. Positions that are unevaluated, invalid or
// carry violations are ignored. It reports whether any slot changed.
func (f *ParetoFront) Update(p *position.Position) bool {
	if p == nil || p.Empty() || p.Invalid() || p.Violations > 0 {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	changed := false
	var c *position.Position
	for obj, m := range f.members {
		if obj >= len(p.Fitness) || !betterOn(p, m, obj) {
			continue
		}
		if c == nil {
			c = p.Clone()
		}
		f.members[obj] = c
		changed = true
	}

	return changed
}

// betterOn reports whether p beats m on objective obj, ties broken by
// dominance.
func betterOn(p, m *position.Position, obj int) bool {
	if m == nil {
		return true
	}
	if p.Fitness[obj] != m.Fitness[obj] {
		return p.Fitness[obj] < m.Fitness[obj]
	}

	return p.Dominates(m) && !p.Equal(m)
}

// Best returns a copy of the member for objective obj, or nil.
func (f *ParetoFront) Best(obj int) *position.Position {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if obj < 0 || obj >= len(f.members) || f.members[obj] == nil {
		return nil
	}

	return f.members[obj].Clone()
}

// Members returns copies of the distinct members, in objective order.
func (f *ParetoFront) Members() []*position.Position {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*position.Position
	seen := map[*position.Position]bool{}
	for _, m := range f.members {
		if m != nil && !seen[m] {
			seen[m] = true
			out = append(out, m.Clone())
		}
	}

	return out
}

// Empty reports whether no objective has a member.
func (f *ParetoFront) Empty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, m := range f.members {
		if m != nil {
			return false
		}
	}

	return true
}

func (f *ParetoFront) String() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var b strings.Builder
	for obj, m := range f.members {
		if m == nil {
			fmt.Fprintf(&b, "objective %d: -\n", obj)
			continue
		}
		fmt.Fprintf(&b, "objective %d: %v\n", obj, m.Fitness)
	}

	return b.String()
}
