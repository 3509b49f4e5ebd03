package fitness

import (
	"errors"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/position"
)

var (
	// ErrInconsistentPeriod indicates a non-positive period reported for a
	// position with no violations at all.
	ErrInconsistentPeriod = errors.New("fitness: non-positive period without violations")

	// ErrWeightLength indicates objective weights not covering every
	// application plus energy.
	ErrWeightLength = errors.New("fitness: objective weight length mismatch")

	// ErrPenaltyLength indicates a penalty vector not covering every
	// application plus energy.
	ErrPenaltyLength = errors.New("fitness: penalty length mismatch")

	// ErrShape indicates a simulator result or schedule family that does
	// not match the problem.
	ErrShape = errors.New("fitness: shape mismatch")

	// ErrNilEngine indicates an Evaluator constructed without an engine.
	ErrNilEngine = errors.New("fitness: nil engine")
)

// Unbounded stands in for a period or energy the genetic layout cannot
// score.
const Unbounded int64 = math.MaxInt32

// Layout selects the fitness vector layout.
type Layout uint8

const (
	// Genetic is [periods…, energy].
	Genetic Layout = iota

	// Swarm is [periods…, energy, memoryViolations].
	Swarm
)

// Len returns the vector length for numApps applications.
func (l Layout) Len(numApps int) int {
	if l == Swarm {
		return numApps + 2
	}

	return numApps + 1
}

func (l Layout) String() string {
	if l == Swarm {
		return "swarm"
	}

	return "genetic"
}

// Design is the concrete implementation handed to a simulator.
type Design struct {
	// Mappings holds the processor of every actor.
	Mappings []int

	// Modes and TDMA hold the per-processor mode and slot allocation.
	Modes []int
	TDMA  []int

	// ProcNext, SendNext and RecNext are the flattened successor arrays of
	// the execution, send and receive schedules.
	ProcNext []int
	SendNext []int
	RecNext  []int
}

// Simulator reports the performance of one Design.
type Simulator interface {
	// Periods returns one period per application; negative when stalled.
	Periods() []int64

	// Energy returns the total energy of one iteration.
	Energy() int64

	// Slack returns the free memory per processor; negative when exceeded.
	Slack() []int64
}

// Engine builds simulators.
type Engine interface {
	Build(d Design) (Simulator, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(d Design) (Simulator, error)

// Build calls f(d).
func (f EngineFunc) Build(d Design) (Simulator, error) { return f(d) }

// Counter reports the residual ordering violations of a position.
type Counter interface {
	Violations(p *position.Position) (int, error)
}

// Problem is the part of the application model the evaluator needs.
type Problem interface {
	NumActors() int
	NumChannels() int
	NumApps() int
	AppOf(actor int) int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCoMappingPenalty inflates each application's penalty by the
// penalties of the applications sharing a processor with it.
func WithCoMappingPenalty(on bool) Option {
	return func(e *Evaluator) { e.coMapping = on }
}

// WithLogger sets the evaluation logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

// Evaluator computes fitness vectors for one problem.
type Evaluator struct {
	engine    Engine
	counter   Counter
	prob      Problem
	layout    Layout
	penalty   []int64
	coMapping bool
	log       logrus.FieldLogger
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
