package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// StationarySolver computes the stationary failed-count distribution of one
// standby mode. Implementations hold only their config; a solver may be
// reused freely and is safe for concurrent Distribution calls.
type StationarySolver interface {
	// Config returns the system the solver was built for.
	Config() SystemConfig

	// Distribution returns the normalized stationary probabilities over
	// failed-unit counts 0..n.
	Distribution() (StationaryDistribution, error)
}

// NewSolver selects the solver variant for the config's standby mode.
// The mode branch happens exactly once, here; per-state rate logic lives in
// the variants.
func NewSolver(cfg SystemConfig) (StationarySolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case WarmStandby:
		return &WarmStandbySolver{cfg: cfg}, nil
	case ColdStandby:
		return &ColdStandbySolver{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown standby mode %q: %w", cfg.Mode, ErrInvalidConfig)
	}
}

// overflowGuard is the magnitude at which unnormalized birth-death weights
// are rescaled mid-recursion. Any positive scale divides out in the final
// normalization, so rescaling never changes the result.
const overflowGuard = 1e250

// birthDeathStationary solves the balance equations of a birth-death chain
// by the ratio recursion w(0) = 1, w(j) = w(j-1) * birth(j-1) / death(j),
// then normalizes the weights to sum to 1. birth(j) is the failure rate out
// of state j and death(j) the repair rate back from it.
func birthDeathStationary(states int, birth, death func(j int) float64) (StationaryDistribution, error) {
	weights := make([]float64, states)
	weights[0] = 1
	for j := 1; j < states; j++ {
		d := death(j)
		if d <= 0 {
			return nil, fmt.Errorf("death rate %g at state %d: %w", d, j, ErrNumericalInstability)
		}
		weights[j] = weights[j-1] * birth(j-1) / d
		if weights[j] > overflowGuard {
			floats.Scale(1/weights[j], weights[:j+1])
		}
	}
	total := floats.Sum(weights)
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("normalization sum %g: %w", total, ErrNumericalInstability)
	}
	floats.Scale(1/total, weights)

	dist := StationaryDistribution(weights)
	if err := dist.checkFinite(); err != nil {
		return nil, err
	}
	return dist, nil
}

// WarmStandbySolver models all n units as exposed to failure at all times:
// a finite-source birth-death chain with birth rate (n-j)*lambda at state j
// and death rate min(j, s)*mu.
//
// The textbook closed form (binomial weights below s, factorial tail above)
// is this recursion unrolled; accumulating the local rate ratio instead
// keeps intermediate weights in floating-point range for large n.
type WarmStandbySolver struct {
	cfg SystemConfig
}

func (w *WarmStandbySolver) Config() SystemConfig { return w.cfg }

func (w *WarmStandbySolver) Distribution() (StationaryDistribution, error) {
	cfg := w.cfg
	return birthDeathStationary(cfg.States(),
		func(j int) float64 { return float64(cfg.Components-j) * cfg.FailureRate },
		func(j int) float64 { return float64(min(j, cfg.Repairmen)) * cfg.RepairRate },
	)
}

// ColdStandbySolver models only the k active units as exposed to failure;
// spares are failure-immune until promoted. The birth rate is k*lambda
// while a replacement path remains (j <= n-k) and zero beyond it: states
// past the failure budget see no new failures, but the recursion still
// carries them because repairs continue and normalization needs their mass.
type ColdStandbySolver struct {
	cfg SystemConfig
}

func (c *ColdStandbySolver) Config() SystemConfig { return c.cfg }

func (c *ColdStandbySolver) Distribution() (StationaryDistribution, error) {
	cfg := c.cfg
	return birthDeathStationary(cfg.States(),
		func(j int) float64 {
			if j > cfg.Spares() {
				return 0
			}
			return float64(cfg.MinOperational) * cfg.FailureRate
		},
		func(j int) float64 { return float64(min(j, cfg.Repairmen)) * cfg.RepairRate },
	)
}

// Solve computes the stationary distribution for cfg in one call.
func Solve(cfg SystemConfig) (StationaryDistribution, error) {
	solver, err := NewSolver(cfg)
	if err != nil {
		return nil, err
	}
	return solver.Distribution()
}

// Availability returns the long-run fraction of time at least k of the n
// units are operational: the probability mass on failed counts 0..n-k.
func Availability(cfg SystemConfig) (float64, error) {
	dist, err := Solve(cfg)
	if err != nil {
		return 0, err
	}
	return dist.SumThrough(cfg.Spares()), nil
}
