package position

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// NewSpeed returns a zero velocity for the given problem size.
func NewSpeed(numActors, numChannels, numProcs int) *Speed {
	return &Speed{
		Mappings:  make([]float64, numActors),
		Modes:     make([]float64, numProcs),
		TDMA:      make([]float64, numProcs),
		ProcSched: make([]float64, numActors),
		SendSched: make([]float64, numChannels),
		RecSched:  make([]float64, numChannels),
	}
}

// Fits reports ErrSpeedLength unless s has one component per numeric
// field of p. Schedule speeds are checked against the element counts.
func (s *Speed) Fits(p *Position, numChannels int) error {
	switch {
	case len(s.Mappings) != len(p.Mappings), len(s.ProcSched) != len(p.Mappings):
		return fmt.Errorf("actors: %w", ErrSpeedLength)
	case len(s.Modes) != len(p.Modes), len(s.TDMA) != len(p.TDMA):
		return fmt.Errorf("processors: %w", ErrSpeedLength)
	case len(s.SendSched) != numChannels, len(s.RecSched) != numChannels:
		return fmt.Errorf("channels: %w", ErrSpeedLength)
	}

	return nil
}

// ApplyBounds limits mapping velocity to ±numProcs/2.
func (s *Speed) ApplyBounds(numProcs int) {
	lim := float64(numProcs) / 2
	for i, v := range s.Mappings {
		if v < -lim {
			s.Mappings[i] = -lim
		} else if v > lim {
			s.Mappings[i] = lim
		}
	}
}

// Average returns the mean mapping velocity, 0 for an empty speed.
func (s *Speed) Average() float64 {
	if len(s.Mappings) == 0 {
		return 0
	}

	return stat.Mean(s.Mappings, nil)
}

// Clone returns a deep copy.
func (s *Speed) Clone() *Speed {
	return &Speed{
		Mappings:  append([]float64(nil), s.Mappings...),
		Modes:     append([]float64(nil), s.Modes...),
		TDMA:      append([]float64(nil), s.TDMA...),
		ProcSched: append([]float64(nil), s.ProcSched...),
		SendSched: append([]float64(nil), s.SendSched...),
		RecSched:  append([]float64(nil), s.RecSched...),
	}
}
