package model

import (
	"errors"

	"github.com/jiankangren/DeSyDe-meta/core"
)

// Sentinel errors for model construction and validation.
var (
	// ErrNoProcessors indicates a platform without processors.
	ErrNoProcessors = errors.New("model: platform has no processors")

	// ErrNoModes indicates a processor without operating modes.
	ErrNoModes = errors.New("model: processor has no modes")

	// ErrBadMode indicates a mode with non-positive speed or negative power.
	ErrBadMode = errors.New("model: invalid mode")

	// ErrBadTDMA indicates a negative slot budget or non-positive slot length.
	ErrBadTDMA = errors.New("model: invalid TDMA configuration")

	// ErrNoApplications indicates an empty application set.
	ErrNoApplications = errors.New("model: no applications")

	// ErrActorApp indicates an actor referencing an unknown application.
	ErrActorApp = errors.New("model: actor references unknown application")

	// ErrChannelEndpoint indicates a channel endpoint outside the actor range.
	ErrChannelEndpoint = errors.New("model: channel endpoint out of range")

	// ErrCrossAppChannel indicates a channel connecting two applications.
	ErrCrossAppChannel = errors.New("model: channel crosses applications")

	// ErrNegativeValue indicates a negative WCET, memory, token count or size.
	ErrNegativeValue = errors.New("model: negative value")

	// ErrZeroWCET indicates an actor that takes no time to fire.
	ErrZeroWCET = errors.New("model: actor WCET must be positive")

	// ErrZeroTokenCycle indicates a cycle made of channels without initial tokens.
	ErrZeroTokenCycle = errors.New("model: cycle of zero-token channels")

	// ErrEmptyApplication indicates an application without actors.
	ErrEmptyApplication = errors.New("model: application has no actors")
)

// Mode is one operating point of a processor.
type Mode struct {
	Name string `yaml:"name"`

	// Speed is relative to 100: an actor with WCET w runs for w·100/Speed.
	Speed float64 `yaml:"speed"`

	// Power is the dynamic power drawn while busy.
	Power float64 `yaml:"power"`
}

// Processor is one processing element.
type Processor struct {
	Name string `yaml:"name"`

	// Memory is the local memory size; 0 means unlimited.
	Memory int64 `yaml:"memory"`

	Modes []Mode `yaml:"modes"`
}

// Platform is the target multiprocessor.
type Platform struct {
	Processors []Processor `yaml:"processors"`

	// TDMASlots is the platform-wide slot budget shared by all processors.
	TDMASlots int `yaml:"tdma_slots"`

	// SlotLength is the duration of one TDMA slot.
	SlotLength int64 `yaml:"slot_length"`
}

// Application is one dataflow graph with its throughput requirement.
type Application struct {
	Name string `yaml:"name"`

	// Period is the required period; 0 means unconstrained.
	Period int64 `yaml:"period"`
}

// Actor is a node of an application.
type Actor struct {
	Name   string `yaml:"name"`
	App    int    `yaml:"app"`
	WCET   int64  `yaml:"wcet"`
	Memory int64  `yaml:"memory"`
}

// Channel is a directed FIFO between two actors of the same application.
type Channel struct {
	Src       int   `yaml:"src"`
	Dst       int   `yaml:"dst"`
	Tokens    int64 `yaml:"tokens"`
	TokenSize int64 `yaml:"token_size"`
}

// Applications is the read-only application oracle.
type Applications struct {
	apps     []Application
	actors   []Actor
	channels []Channel

	graph   *core.Graph    // actors and all channels, edge id = channel id
	depends []map[int]bool // depends[a][b]: b reachable from a over zero-token channels
	succ    [][]int        // zero-token successors
	pred    [][]int        // zero-token predecessors
	roots   [][]int        // per application
	byApp   [][]int        // actors per application
}

// Document is the on-disk problem description.
type Document struct {
	Platform     Platform      `yaml:"platform"`
	Applications []Application `yaml:"applications"`
	Actors       []Actor       `yaml:"actors"`
	Channels     []Channel     `yaml:"channels"`
}

// Model bundles a validated platform and application set.
type Model struct {
	Platform *Platform
	Apps     *Applications
}
