package individual

import (
	"fmt"

	"github.com/jiankangren/DeSyDe-meta/position"
)

// ID returns the individual's index in its population.
func (in *Individual) ID() int { return in.id }

// Objective returns the objective index of the global best it follows.
func (in *Individual) Objective() int { return in.params.Objective }

// Current returns a copy of the current position.
func (in *Individual) Current() *position.Position { return in.cur.Clone() }

// BestLocal returns a copy of the best position seen, nil before the first
// evaluation.
func (in *Individual) BestLocal() *position.Position {
	if in.best == nil {
		return nil
	}

	return in.best.Clone()
}

// BestGlobal returns a copy of the last global best received.
func (in *Individual) BestGlobal() *position.Position {
	if in.bestGlobal == nil {
		return nil
	}

	return in.bestGlobal.Clone()
}

// SetBestGlobal stores a copy of g.
func (in *Individual) SetBestGlobal(g *position.Position) {
	if g == nil {
		in.bestGlobal = nil
		return
	}
	in.bestGlobal = g.Clone()
}

// InvalidMoves returns the number of consecutive invalid evaluations.
func (in *Individual) InvalidMoves() int { return in.invalid }

func (in *Individual) String() string {
	return fmt.Sprintf("individual %d (invalid %d)\n%s", in.id, in.invalid, in.cur)
}
