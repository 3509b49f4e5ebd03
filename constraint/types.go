package constraint

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/rng"
)

var (
	// ErrProcessorRange indicates a mapping resolving outside [0,numProcessors).
	ErrProcessorRange = errors.New("constraint: processor out of range")

	// ErrMissingSchedule indicates a position whose schedule families were not built.
	ErrMissingSchedule = errors.New("constraint: schedules not built")

	// ErrShape indicates a position sized for a different problem.
	ErrShape = errors.New("constraint: position does not match the model")
)

// Applications is the read-only application oracle.
type Applications interface {
	NumActors() int
	NumChannels() int
	NumApps() int
	AppOf(actor int) int
	DependsOn(a, b int) bool
	ChannelEnds(ch int) (src, dst int)
	TokensOnChannel(ch int) int64
	Roots(app int) []int
	Successors(actor int) []int
	Predecessors(actor int) []int
	PeriodConstraint(app int) int64
}

// Platform is the read-only platform oracle.
type Platform interface {
	NumProcessors() int
	NumModes(proc int) int
	TDMASlotBudget() int
}

// Counts holds violation counts per relation.
type Counts struct {
	Exec     int
	Send     int
	ProcRec  int
	Rec      int
	Deadlock bool
}

// Total sums the relation counts and adds one for a deadlock.
func (c Counts) Total() int {
	t := c.Exec + c.Send + c.ProcRec + c.Rec
	if c.Deadlock {
		t++
	}

	return t
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger used for repair diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Checker) {
		if l != nil {
			c.log = l
		}
	}
}

// WithEstimate makes Violations use the short-circuit estimate instead of
// the exact count.
func WithEstimate(on bool) Option {
	return func(c *Checker) { c.estimate = on }
}

// Checker validates and repairs positions for one problem instance.
type Checker struct {
	apps     Applications
	plat     Platform
	src      *rng.Source
	log      logrus.FieldLogger
	estimate bool

	numActors   int
	numChannels int
	numProcs    int

	// tokens[[2]int{a,b}] sums initial tokens over channels a→b.
	tokens map[[2]int]int64

	stuck []int
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
