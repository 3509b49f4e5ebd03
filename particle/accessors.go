package particle

import (
	"fmt"

	"github.com/jiankangren/DeSyDe-meta/position"
)

// ID returns the particle's index in its swarm.
func (p *Particle) ID() int { return p.id }

// Objective returns the fitness component driving the personal best.
func (p *Particle) Objective() int { return p.params.Objective }

// Current returns a copy of the current position.
func (p *Particle) Current() *position.Position { return p.cur.Clone() }

// BestLocal returns a copy of the personal best, nil before the first
// evaluation.
func (p *Particle) BestLocal() *position.Position {
	if p.bestLocal == nil {
		return nil
	}

	return p.bestLocal.Clone()
}

// BestGlobal returns a copy of the last global best received.
func (p *Particle) BestGlobal() *position.Position {
	if p.bestGlobal == nil {
		return nil
	}

	return p.bestGlobal.Clone()
}

// SetBestGlobal stores a copy of g as the global best.
func (p *Particle) SetBestGlobal(g *position.Position) {
	if g == nil {
		p.bestGlobal = nil
		return
	}
	p.bestGlobal = g.Clone()
}

// Speed returns a copy of the velocity.
func (p *Particle) Speed() *position.Speed { return p.speed.Clone() }

// InvalidMoves returns the number of consecutive invalid evaluations.
func (p *Particle) InvalidMoves() int { return p.invalid }

func (p *Particle) String() string {
	return fmt.Sprintf("particle %d (objective %d, invalid %d, mean speed %.3f)\n%s",
		p.id, p.params.Objective, p.invalid, p.speed.Average(), p.cur)
}
