package model

import "fmt"

// Validate checks processors, modes and the TDMA configuration.
func (p *Platform) Validate() error {
	if len(p.Processors) == 0 {
		return ErrNoProcessors
	}
	for i, proc := range p.Processors {
		if len(proc.Modes) == 0 {
			return fmt.Errorf("processor %d (%s): %w", i, proc.Name, ErrNoModes)
		}
		if proc.Memory < 0 {
			return fmt.Errorf("processor %d (%s) memory: %w", i, proc.Name, ErrNegativeValue)
		}
		for j, m := range proc.Modes {
			if m.Speed <= 0 || m.Power < 0 {
				return fmt.Errorf("processor %d mode %d: %w", i, j, ErrBadMode)
			}
		}
	}
	if p.TDMASlots < 0 || p.SlotLength <= 0 {
		return ErrBadTDMA
	}

	return nil
}

// NumProcessors returns the processor count.
func (p *Platform) NumProcessors() int { return len(p.Processors) }

// NumModes returns the number of modes of processor proc, or 0 if out of range.
func (p *Platform) NumModes(proc int) int {
	if proc < 0 || proc >= len(p.Processors) {
		return 0
	}

	return len(p.Processors[proc].Modes)
}

// TDMASlotBudget returns the platform-wide slot budget.
func (p *Platform) TDMASlotBudget() int { return p.TDMASlots }

// Mode returns mode m of processor proc. Out-of-range indices are clamped.
func (p *Platform) Mode(proc, m int) Mode {
	modes := p.Processors[proc].Modes
	if m < 0 {
		m = 0
	}
	if m >= len(modes) {
		m = len(modes) - 1
	}

	return modes[m]
}
