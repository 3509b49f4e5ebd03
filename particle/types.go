package particle

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/constraint"
	"github.com/jiankangren/DeSyDe-meta/fitness"
	"github.com/jiankangren/DeSyDe-meta/position"
)

// ErrObjective indicates an objective index outside the fitness vector.
var ErrObjective = errors.New("particle: objective out of range")

// DefaultInvalidLimit is the number of consecutive evaluations with a
// negative primary objective tolerated before reinitialisation.
const DefaultInvalidLimit = 30

// Params are the swarm coefficients of one particle.
type Params struct {
	// Objective is the fitness component driving the personal best.
	Objective int

	Inertia      float64
	LocalWeight  float64
	GlobalWeight float64

	// InvalidLimit defaults to DefaultInvalidLimit when zero.
	InvalidLimit int

	Weights  []float64
	MultiObj bool
}

// Option configures a Particle.
type Option func(*Particle)

// WithLogger sets the particle logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Particle) {
		if l != nil {
			p.log = l
		}
	}
}

// Particle is one swarm agent. It is not safe for concurrent use.
type Particle struct {
	id      int
	apps    constraint.Applications
	plat    constraint.Platform
	checker *constraint.Checker
	eval    *fitness.Evaluator
	params  Params
	log     logrus.FieldLogger

	cur        *position.Position
	bestLocal  *position.Position
	bestGlobal *position.Position
	speed      *position.Speed
	invalid    int
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
