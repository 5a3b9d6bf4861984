package sim

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CostModel holds the three unit costs of the sizing objective. A nil
// CostModel means the costs are not known; optimization is then unavailable
// and Optimize returns an absent result instead of pricing with zeros.
type CostModel struct {
	ComponentCost float64 // per component per unit time
	RepairmanCost float64 // per repairman per unit time
	DowntimeCost  float64 // per unit of system downtime
}

// Validate rejects negative unit costs. A nil model is valid (costs unknown).
func (cm *CostModel) Validate() error {
	if cm == nil {
		return nil
	}
	if cm.ComponentCost < 0 {
		return fmt.Errorf("component cost must be non-negative, got %g: %w", cm.ComponentCost, ErrInvalidConfig)
	}
	if cm.RepairmanCost < 0 {
		return fmt.Errorf("repairman cost must be non-negative, got %g: %w", cm.RepairmanCost, ErrInvalidConfig)
	}
	if cm.DowntimeCost < 0 {
		return fmt.Errorf("downtime cost must be non-negative, got %g: %w", cm.DowntimeCost, ErrInvalidConfig)
	}
	return nil
}

// CandidateCost is the evaluated objective for one (n, s) candidate.
type CandidateCost struct {
	Config        SystemConfig
	Availability  float64
	ComponentTerm float64 // cost of powered components
	RepairmanTerm float64 // flat cost of the repair pool
	DowntimeTerm  float64 // penalty for unavailable time
	TotalCost     float64
}

// EvaluateCost prices one configuration under the cost model, per unit time.
// Warm standby charges for the expected number of working units; cold
// standby charges only the k active slots, weighted by the fraction of time
// the system is actually up. Repairmen cost flat, independent of
// utilization, and downtime is penalized by the unavailable fraction.
func EvaluateCost(cfg SystemConfig, costs CostModel) (CandidateCost, error) {
	solver, err := NewSolver(cfg)
	if err != nil {
		return CandidateCost{}, err
	}
	dist, err := solver.Distribution()
	if err != nil {
		return CandidateCost{}, err
	}
	availability := dist.SumThrough(cfg.Spares())

	var componentTerm float64
	switch cfg.Mode {
	case ColdStandby:
		componentTerm = costs.ComponentCost * float64(cfg.MinOperational) * availability
	default:
		componentTerm = costs.ComponentCost * dist.ExpectedOperational(cfg.Components)
	}

	cc := CandidateCost{
		Config:        cfg,
		Availability:  availability,
		ComponentTerm: componentTerm,
		RepairmanTerm: costs.RepairmanCost * float64(cfg.Repairmen),
		DowntimeTerm:  costs.DowntimeCost * (1 - availability),
	}
	cc.TotalCost = cc.ComponentTerm + cc.RepairmanTerm + cc.DowntimeTerm
	return cc, nil
}

// OptimizationResult is the minimum-cost configuration found by Optimize.
type OptimizationResult struct {
	Components   int     // n of the winning candidate
	Repairmen    int     // s of the winning candidate
	Availability float64 // solver availability of the winner
	TotalCost    float64 // objective value of the winner
}

// OptimizeSpec bounds the candidate grid and carries the cost model.
type OptimizeSpec struct {
	MaxComponents int        // upper bound for n; candidates span [k, MaxComponents]
	MaxRepairmen  int        // upper bound for s; candidates span [1, MaxRepairmen]
	Costs         *CostModel // nil = costs unknown, optimization unavailable
	// Progress, when non-nil, is called once per evaluated candidate,
	// possibly from concurrent goroutines.
	Progress func()
}

// GridSize returns the number of candidates Optimize will evaluate for a
// system requiring k operational units. Zero means the grid is empty.
func (spec OptimizeSpec) GridSize(k int) int {
	if spec.MaxComponents < k || spec.MaxRepairmen < 1 {
		return 0
	}
	return (spec.MaxComponents - k + 1) * spec.MaxRepairmen
}

// Optimize searches the (n, s) grid for the cheapest configuration. The
// base config supplies k, the rates and the standby mode; its own n and s
// do not constrain the search.
//
// Candidates evaluate concurrently, but the reduction scans them in fixed
// (n ascending, s ascending) order and keeps the first strictly cheaper
// candidate. Ties resolve toward fewer components, then fewer repairmen,
// and the winner never depends on goroutine scheduling.
//
// Returns (nil, nil) when the cost model is absent or the grid is empty.
func Optimize(base SystemConfig, spec OptimizeSpec) (*OptimizationResult, error) {
	// Probe config: the grid overrides n and s, so only k, the rates and
	// the mode need to hold up to validation.
	probe := base
	probe.Components = max(base.Components, base.MinOperational)
	probe.Repairmen = max(base.Repairmen, 1)
	if err := probe.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Costs.Validate(); err != nil {
		return nil, err
	}
	if spec.Costs == nil {
		return nil, nil
	}

	k := base.MinOperational
	size := spec.GridSize(k)
	if size == 0 {
		return nil, nil
	}

	type candidate struct{ n, s int }
	grid := make([]candidate, 0, size)
	for n := k; n <= spec.MaxComponents; n++ {
		for s := 1; s <= spec.MaxRepairmen; s++ {
			grid = append(grid, candidate{n, s})
		}
	}

	results := make([]CandidateCost, len(grid))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cand := range grid {
		g.Go(func() error {
			cfg := probe
			cfg.Components = cand.n
			cfg.Repairmen = cand.s
			cc, err := EvaluateCost(cfg, *spec.Costs)
			if err != nil {
				return fmt.Errorf("evaluating candidate n=%d s=%d: %w", cand.n, cand.s, err)
			}
			results[i] = cc
			if spec.Progress != nil {
				spec.Progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, cc := range results[1:] {
		if cc.TotalCost < best.TotalCost {
			best = cc
		}
	}
	logrus.Debugf("optimizer: best of %d candidates is n=%d s=%d cost=%.4f availability=%.6f",
		len(grid), best.Config.Components, best.Config.Repairmen, best.TotalCost, best.Availability)

	return &OptimizationResult{
		Components:   best.Config.Components,
		Repairmen:    best.Config.Repairmen,
		Availability: best.Availability,
		TotalCost:    best.TotalCost,
	}, nil
}
