package position

import (
	"errors"

	"github.com/jiankangren/DeSyDe-meta/schedule"
)

// ErrSpeedLength indicates a speed vector that does not match the position.
var ErrSpeedLength = errors.New("position: speed length mismatch")

// Kind distinguishes mapping representations.
type Kind uint8

const (
	// KindUnrestricted names a processor directly.
	KindUnrestricted Kind = iota

	// KindFromDomain selects a processor by index within a domain.
	KindFromDomain
)

// Mapping assigns one actor to a processor.
type Mapping struct {
	kind   Kind
	proc   int
	group  int
	domain []int
	index  int
}

// Position is one candidate solution.
type Position struct {
	// Mappings holds one mapping per actor.
	Mappings []Mapping

	// Modes holds the operating mode per processor.
	Modes []int

	// TDMA holds the slot allocation per processor.
	TDMA []int

	// ProcSched, SendSched and RecSched hold one schedule per processor.
	ProcSched []*schedule.Schedule
	SendSched []*schedule.Schedule
	RecSched  []*schedule.Schedule

	// Fitness is empty until evaluated.
	Fitness []int64

	// Weights scale Fitness components for the single-objective sum.
	Weights []float64

	// MultiObj selects component-wise dominance.
	MultiObj bool

	// AppGroup and ProcGroup are the symmetry-breaking partitions of the
	// domain representation; nil for unrestricted positions.
	AppGroup  []int
	ProcGroup []int

	// Violations is the residual violation count of the last evaluation.
	Violations int
}

// Speed is the particle velocity; each field parallels a Position field.
// Schedule velocities are indexed by element id (actor or channel).
type Speed struct {
	Mappings  []float64
	Modes     []float64
	TDMA      []float64
	ProcSched []float64
	SendSched []float64
	RecSched  []float64
}
