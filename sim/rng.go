package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemLifetime is the RNG subsystem for component lifetime draws.
	SubsystemLifetime = "lifetime"

	// SubsystemRepair is the RNG subsystem for repair duration draws.
	SubsystemRepair = "repair"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName), giving each
// subsystem an independent stream. Lifetime and repair draws never share a
// sequence, so the repair workload cannot perturb the failure trajectory.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === ExponentialSampler ===

// ExponentialSampler draws exponentially distributed durations at a fixed
// rate from one subsystem stream. Mean duration is 1/rate.
type ExponentialSampler struct {
	rate float64
	rng  *rand.Rand
}

// NewExponentialSampler creates a sampler for the given rate (> 0).
func NewExponentialSampler(rate float64, rng *rand.Rand) (*ExponentialSampler, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("exponential rate must be positive, got %g: %w", rate, ErrInvalidConfig)
	}
	if rng == nil {
		return nil, fmt.Errorf("exponential sampler requires a random source: %w", ErrInvalidConfig)
	}
	return &ExponentialSampler{rate: rate, rng: rng}, nil
}

// Sample draws one exponentially distributed duration.
func (e *ExponentialSampler) Sample() float64 {
	return e.rng.ExpFloat64() / e.rate
}
