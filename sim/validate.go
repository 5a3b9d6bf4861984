package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// DefaultTolerance is the relative disagreement allowed between the solver
// and the simulator when estimating the same availability.
const DefaultTolerance = 0.05

// DefaultValidationSpec is the simulation effort used by the validation
// suite: enough events for the estimator's noise to sit well inside the
// tolerance band.
var DefaultValidationSpec = SimulationSpec{Cycles: 1_000_000, Warmup: 10_000, Seed: 42}

// ValidationCase pairs a config with the simulation effort and tolerance
// used to check it.
type ValidationCase struct {
	Name      string
	Config    SystemConfig
	Spec      SimulationSpec
	Tolerance float64
}

// ValidationReport compares the analytical and simulated availability of
// one configuration.
type ValidationReport struct {
	Case         ValidationCase
	Analytical   float64
	Simulated    float64
	RelativeDiff float64
	Pass         bool
}

// CrossValidate solves and simulates the same configuration and reports the
// disagreement. The diff is relative to the analytical value when that is
// positive, absolute otherwise.
func CrossValidate(vc ValidationCase) (ValidationReport, error) {
	analytical, err := Availability(vc.Config)
	if err != nil {
		return ValidationReport{}, fmt.Errorf("solving %s: %w", vc.Name, err)
	}
	simulator, err := NewSimulator(vc.Config, vc.Spec)
	if err != nil {
		return ValidationReport{}, fmt.Errorf("simulating %s: %w", vc.Name, err)
	}
	metrics := simulator.Run()

	diff := math.Abs(analytical - metrics.Availability)
	if analytical > 0 {
		diff /= analytical
	}
	report := ValidationReport{
		Case:         vc,
		Analytical:   analytical,
		Simulated:    metrics.Availability,
		RelativeDiff: diff,
		Pass:         diff < vc.Tolerance,
	}
	logrus.Debugf("validation %s: analytical=%.6f simulated=%.6f diff=%.4f pass=%t",
		vc.Name, analytical, metrics.Availability, diff, report.Pass)
	return report, nil
}

// caseName encodes a config's parameters into a stable case label.
func caseName(cfg SystemConfig) string {
	return fmt.Sprintf("%s-n%d-k%d-s%d-l%g-m%g", cfg.Mode,
		cfg.Components, cfg.MinOperational, cfg.Repairmen,
		cfg.FailureRate, cfg.RepairRate)
}

// DefaultSuite returns the standard solver-vs-simulator consistency cases:
// a repairman sweep on a small system plus rate-ratio extremes, each run in
// both standby modes.
func DefaultSuite() []ValidationCase {
	type params struct {
		n, k, s    int
		lambda, mu float64
	}
	base := []params{
		{5, 3, 1, 2.0, 3.0},
		{5, 3, 2, 2.0, 3.0},
		{5, 3, 3, 2.0, 3.0},
		{5, 3, 4, 2.0, 3.0},
		{5, 3, 5, 2.0, 3.0},
		{10, 7, 3, 1.5, 2.5},
		{5, 3, 2, 1.0, 5.0},
		{5, 3, 2, 5.0, 1.0},
	}

	cases := make([]ValidationCase, 0, 2*len(base))
	for _, mode := range []StandbyMode{WarmStandby, ColdStandby} {
		for _, p := range base {
			cfg := SystemConfig{
				Components:     p.n,
				MinOperational: p.k,
				Repairmen:      p.s,
				FailureRate:    p.lambda,
				RepairRate:     p.mu,
				Mode:           mode,
			}
			cases = append(cases, ValidationCase{
				Name:      caseName(cfg),
				Config:    cfg,
				Spec:      DefaultValidationSpec,
				Tolerance: DefaultTolerance,
			})
		}
	}
	return cases
}

// RunSuite cross-validates every case, invoking progress after each one.
// Reports parallel the input order. An error means a case failed to run;
// a tolerance miss is reported in its ValidationReport, not as an error.
func RunSuite(cases []ValidationCase, progress func()) ([]ValidationReport, error) {
	reports := make([]ValidationReport, 0, len(cases))
	for _, vc := range cases {
		report, err := CrossValidate(vc)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
		if progress != nil {
			progress()
		}
	}
	return reports, nil
}
