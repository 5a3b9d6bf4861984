// Package sim models repairable k-out-of-n systems: n components kept in
// service by a pool of s repairmen, with the system operational while at
// least k units work.
//
// # Reading Guide
//
// Start with these three files to understand the core:
//   - config.go: SystemConfig, standby modes, and validation
//   - solver.go: birth-death stationary distributions and availability
//   - simulator.go: the next-event Monte-Carlo trajectory used to cross-check the solver
//
// # Architecture
//
// The failed-unit count evolves as a birth-death Markov chain. Warm standby
// exposes all n units to failure; cold standby exposes only the k active
// units and keeps spares failure-immune until promoted. Both solver
// variants share one ratio recursion over per-state birth and death rates,
// and the simulator estimates the same availability figure from an
// independent seeded trajectory.
//
// Built on the solver:
//   - cost.go: cost model and the deterministic (n, s) grid optimizer
//   - validate.go: solver-vs-simulator cross-validation suite
//   - scenario.go: YAML scenario bundles combining all of the above
//
// Supporting pieces:
//   - rng.go: partitioned deterministic RNG and exponential sampling
//   - queue.go: the FIFO repair queue
//   - metrics.go: time-weighted statistics of a simulation run
//   - sim/trace/: optional per-event trace recording
//
// # Key Interfaces
//
// StationarySolver is the single extension point: WarmStandbySolver and
// ColdStandbySolver implement it, and NewSolver selects the variant once
// per config. Per-state rate logic lives inside the variants, never in
// callers.
package sim
