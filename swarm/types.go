package swarm

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/rng"
)

var (
	// ErrNoAgents indicates an empty population.
	ErrNoAgents = errors.New("swarm: no agents")

	// ErrConfig indicates a non-positive generation or thread count.
	ErrConfig = errors.New("swarm: invalid configuration")
)

// Agent is one member of the population. Both particles and individuals
// implement it.
type Agent interface {
	ID() int
	Objective() int
	CalcFitness() error
	Update() error
	Reinit() error
	Current() *position.Position
	BestLocal() *position.Position
	SetBestGlobal(g *position.Position)
}

// Config sizes a run.
type Config struct {
	Generations int

	// Threads is the number of worker goroutines; capped at the population.
	Threads int

	// StagnationLimit disables restarts when zero.
	StagnationLimit int
}

// Option configures a Swarm.
type Option func(*Swarm)

// WithLogger sets the run logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Swarm) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSource sets the random source used to pick restarted agents.
func WithSource(src *rng.Source) Option {
	return func(s *Swarm) {
		if src != nil {
			s.src = src
		}
	}
}

// Swarm is a population loop. A Swarm runs once at a time.
type Swarm struct {
	cfg    Config
	agents []Agent
	front  *ParetoFront
	src    *rng.Source
	log    logrus.FieldLogger
}

// Stats summarise the primary objective over the final population.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
}

// Result is the outcome of Run.
type Result struct {
	RunID       uuid.UUID
	Front       []*position.Position
	Generations int
	Restarts    int
	Duration    time.Duration
	Stats       Stats

	// Cancelled is set when the context ended the run early.
	Cancelled bool
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
