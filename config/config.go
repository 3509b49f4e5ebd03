package config

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultParticles    = 20
	DefaultGenerations  = 100
	DefaultThreads      = 4
	DefaultSeed         = 1
	DefaultInvalidLimit = 30
	DefaultPenalty      = 1000
)

// Default returns the configuration used for every key a file leaves out.
func Default() Config {
	return Config{
		Search: Search{
			Variant:      Particle,
			Particles:    DefaultParticles,
			Generations:  DefaultGenerations,
			Threads:      DefaultThreads,
			Seed:         DefaultSeed,
			Inertia:      0.5,
			LocalWeight:  0.8,
			GlobalWeight: 0.8,
			InvalidLimit: DefaultInvalidLimit,
		},
		Log: Log{Level: "info", Format: FormatText},
	}
}

// Decode reads a YAML configuration from r over Default and validates it.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads a YAML configuration from path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Validate checks every setting that does not depend on the model.
func (c Config) Validate() error {
	s := c.Search
	switch s.Variant {
	case Particle, Individual:
	default:
		return fmt.Errorf("%q: %w", s.Variant, ErrVariant)
	}
	checks := []struct {
		name string
		ok   bool
	}{
		{"particles", s.Particles > 0},
		{"generations", s.Generations >= 0},
		{"threads", s.Threads > 0},
		{"inertia", s.Inertia >= 0},
		{"local_weight", s.LocalWeight >= 0},
		{"global_weight", s.GlobalWeight >= 0},
		{"invalid_limit", s.InvalidLimit >= 0},
		{"stagnation_limit", s.StagnationLimit >= 0},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("search.%s: %w", ch.name, ErrRange)
		}
	}
	for i, w := range s.Weights {
		if w < 0 {
			return fmt.Errorf("search.weights[%d]: %w", i, ErrRange)
		}
	}
	for i, p := range s.Penalty {
		if p < 0 {
			return fmt.Errorf("search.penalty[%d]: %w", i, ErrRange)
		}
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		return fmt.Errorf("%q: %w", c.Log.Format, ErrLogFormat)
	}

	return nil
}

// ObjectiveWeights returns the configured objective weights, or n ones.
func (s Search) ObjectiveWeights(n int) []float64 {
	if len(s.Weights) > 0 {
		return append([]float64(nil), s.Weights...)
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}

	return w
}

// Penalties returns the configured penalty vector, or n copies of
// DefaultPenalty.
func (s Search) Penalties(n int) []int64 {
	if len(s.Penalty) > 0 {
		return append([]int64(nil), s.Penalty...)
	}
	p := make([]int64, n)
	for i := range p {
		p[i] = DefaultPenalty
	}

	return p
}

// Logger returns a logger writing to w with the configured level and format.
func (l Log) Logger(w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log.level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	if l.Format == FormatJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log, nil
}
