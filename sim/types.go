package sim

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/model"
)

var (
	// ErrDesign indicates a design that does not fit the model.
	ErrDesign = errors.New("sim: design does not match the model")

	// ErrRing indicates a successor array that does not form one ring.
	ErrRing = errors.New("sim: malformed successor ring")
)

// Stalled is the period reported for an application that did not finish.
const Stalled int64 = -1

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine builds simulations for one model. It is stateless and safe for
// concurrent use.
type Engine struct {
	m   *model.Model
	log logrus.FieldLogger
}

// Result is the outcome of one simulated iteration.
type Result struct {
	periods []int64
	energy  int64
	slack   []int64
	start   []int64
	finish  []int64
	stalled []int
}

// Periods returns the period of every application.
func (r *Result) Periods() []int64 { return append([]int64(nil), r.periods...) }

// Energy returns the energy of one iteration.
func (r *Result) Energy() int64 { return r.energy }

// Slack returns the free memory of every processor.
func (r *Result) Slack() []int64 { return append([]int64(nil), r.slack...) }

// Start returns the start time of actor a, or -1 if it never ran.
func (r *Result) Start(a int) int64 { return r.start[a] }

// Finish returns the finish time of actor a, or -1 if it never ran.
func (r *Result) Finish(a int) int64 { return r.finish[a] }

// Stalled returns the actors that never ran, in ascending order.
func (r *Result) Stalled() []int { return append([]int(nil), r.stalled...) }

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
