package sim

import "fmt"

// StandbyMode selects how idle spare units behave while the system runs.
type StandbyMode string

const (
	// WarmStandby keeps all n units powered: spares fail at the same rate
	// as active units.
	WarmStandby StandbyMode = "warm"

	// ColdStandby keeps spares unpowered: they cannot fail until promoted
	// to replace a failed active unit.
	ColdStandby StandbyMode = "cold"
)

// ValidStandbyModes is the set of recognized standby mode names.
var ValidStandbyModes = map[StandbyMode]bool{WarmStandby: true, ColdStandby: true}

// ParseStandbyMode converts a mode string ("warm" or "cold") to a StandbyMode.
func ParseStandbyMode(s string) (StandbyMode, error) {
	mode := StandbyMode(s)
	if !ValidStandbyModes[mode] {
		return "", fmt.Errorf("unknown standby mode %q: %w", s, ErrInvalidConfig)
	}
	return mode, nil
}

// SystemConfig groups the parameters of one repairable k-out-of-n system:
// n components of which at least k must be operational, with s repairmen
// restoring failed units. Once validated a config is never mutated; derived
// analyses (optimizer candidates) build fresh configs instead of editing a
// shared one.
type SystemConfig struct {
	Components     int         // n: total units (must be >= 1)
	MinOperational int         // k: units required for the system to be up (1 <= k <= n)
	Repairmen      int         // s: concurrent repair capacity (must be >= 1)
	FailureRate    float64     // lambda: failures per unit time per exposed unit (must be > 0)
	RepairRate     float64     // mu: repairs per unit time per busy repairman (must be > 0)
	Mode           StandbyMode // warm or cold standby
}

// Spares returns the standby slack n-k: the number of failures the system
// absorbs before going down.
func (c SystemConfig) Spares() int {
	return c.Components - c.MinOperational
}

// States returns the number of failed-count states, n+1.
func (c SystemConfig) States() int {
	return c.Components + 1
}

// Validate checks all SystemConfig invariants. Violations are reported
// once, here, and never silently corrected downstream.
func (c SystemConfig) Validate() error {
	if c.Components < 1 {
		return fmt.Errorf("component count must be >= 1, got %d: %w", c.Components, ErrInvalidConfig)
	}
	if c.MinOperational < 1 {
		return fmt.Errorf("minimum operational count must be >= 1, got %d: %w", c.MinOperational, ErrInvalidConfig)
	}
	if c.MinOperational > c.Components {
		return fmt.Errorf("minimum operational count %d exceeds component count %d: %w",
			c.MinOperational, c.Components, ErrInvalidConfig)
	}
	if c.Repairmen < 1 {
		return fmt.Errorf("repairman count must be >= 1, got %d: %w", c.Repairmen, ErrInvalidConfig)
	}
	if c.FailureRate <= 0 {
		return fmt.Errorf("failure rate must be positive, got %g: %w", c.FailureRate, ErrInvalidConfig)
	}
	if c.RepairRate <= 0 {
		return fmt.Errorf("repair rate must be positive, got %g: %w", c.RepairRate, ErrInvalidConfig)
	}
	if !ValidStandbyModes[c.Mode] {
		return fmt.Errorf("unknown standby mode %q: %w", c.Mode, ErrInvalidConfig)
	}
	return nil
}
