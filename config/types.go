package config

import "errors"

var (
	// ErrVariant indicates an unknown search variant.
	ErrVariant = errors.New("config: unknown search variant")

	// ErrRange indicates a numeric setting outside its domain.
	ErrRange = errors.New("config: value out of range")

	// ErrLogFormat indicates an unknown log format.
	ErrLogFormat = errors.New("config: unknown log format")
)

// Variant selects the population member.
type Variant string

const (
	// Particle runs velocity-driven particles.
	Particle Variant = "particle"

	// Individual runs opposition-based individuals.
	Individual Variant = "individual"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the full run configuration.
type Config struct {
	Search Search `yaml:"search"`
	Model  Model  `yaml:"model"`
	Store  Store  `yaml:"store"`
	Log    Log    `yaml:"log"`
}

// Search sizes and tunes the population loop.
type Search struct {
	Variant     Variant `yaml:"variant"`
	Particles   int     `yaml:"particles"`
	Generations int     `yaml:"generations"`
	Threads     int     `yaml:"threads"`
	Seed        int64   `yaml:"seed"`

	Inertia      float64 `yaml:"inertia"`
	LocalWeight  float64 `yaml:"local_weight"`
	GlobalWeight float64 `yaml:"global_weight"`

	// Weights scale the fitness components; empty means all ones.
	Weights        []float64 `yaml:"weights"`
	MultiObjective bool      `yaml:"multi_objective"`

	// Penalty has one entry per application plus one for energy; empty
	// means DefaultPenalty everywhere.
	Penalty            []int64 `yaml:"penalty"`
	CoMappingPenalty   bool    `yaml:"co_mapping_penalty"`
	EstimateViolations bool    `yaml:"estimate_violations"`

	InvalidLimit    int `yaml:"invalid_limit"`
	StagnationLimit int `yaml:"stagnation_limit"`
}

// Model locates the problem description.
type Model struct {
	Path string `yaml:"path"`
}

// Store locates the result database. An empty path disables persistence.
type Store struct {
	Path string `yaml:"path"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
