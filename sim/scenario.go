package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioBundle holds one complete analysis request, loadable from a YAML
// file. The system block is required; the simulation and optimization
// blocks are optional and nil when absent from the file.
type ScenarioBundle struct {
	Name         string            `yaml:"name"`
	System       SystemYAML        `yaml:"system"`
	Simulation   *SimulationYAML   `yaml:"simulation"`
	Optimization *OptimizationYAML `yaml:"optimization"`
}

// SystemYAML mirrors SystemConfig with YAML field names.
type SystemYAML struct {
	Components     int     `yaml:"components"`
	MinOperational int     `yaml:"min_operational"`
	Repairmen      int     `yaml:"repairmen"`
	FailureRate    float64 `yaml:"failure_rate"`
	RepairRate     float64 `yaml:"repair_rate"`
	Mode           string  `yaml:"mode"`
}

// SimulationYAML holds the optional simulation block.
type SimulationYAML struct {
	Cycles int   `yaml:"cycles"`
	Warmup int   `yaml:"warmup"`
	Seed   int64 `yaml:"seed"`
}

// OptimizationYAML holds the optional optimization block. Nil cost fields
// mean "not set in YAML": optimization is then reported as unavailable
// rather than priced with zeros.
type OptimizationYAML struct {
	MaxComponents int      `yaml:"max_components"`
	MaxRepairmen  int      `yaml:"max_repairmen"`
	ComponentCost *float64 `yaml:"component_cost"`
	RepairmanCost *float64 `yaml:"repairman_cost"`
	DowntimeCost  *float64 `yaml:"downtime_cost"`
}

// LoadScenario reads, parses and validates a YAML scenario file.
func LoadScenario(path string) (*ScenarioBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var bundle ScenarioBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// SystemConfig converts the system block to a validated SystemConfig.
func (b *ScenarioBundle) SystemConfig() (SystemConfig, error) {
	mode, err := ParseStandbyMode(b.System.Mode)
	if err != nil {
		return SystemConfig{}, err
	}
	cfg := SystemConfig{
		Components:     b.System.Components,
		MinOperational: b.System.MinOperational,
		Repairmen:      b.System.Repairmen,
		FailureRate:    b.System.FailureRate,
		RepairRate:     b.System.RepairRate,
		Mode:           mode,
	}
	if err := cfg.Validate(); err != nil {
		return SystemConfig{}, err
	}
	return cfg, nil
}

// SimulationSpec converts the simulation block. Reports ok=false when the
// scenario has none.
func (b *ScenarioBundle) SimulationSpec() (SimulationSpec, bool) {
	if b.Simulation == nil {
		return SimulationSpec{}, false
	}
	return SimulationSpec{
		Cycles: b.Simulation.Cycles,
		Warmup: b.Simulation.Warmup,
		Seed:   b.Simulation.Seed,
	}, true
}

// OptimizeSpec converts the optimization block. Reports ok=false when the
// scenario has none. Costs stay nil unless all three are set in the file.
func (b *ScenarioBundle) OptimizeSpec() (OptimizeSpec, bool) {
	o := b.Optimization
	if o == nil {
		return OptimizeSpec{}, false
	}
	spec := OptimizeSpec{
		MaxComponents: o.MaxComponents,
		MaxRepairmen:  o.MaxRepairmen,
	}
	if o.ComponentCost != nil && o.RepairmanCost != nil && o.DowntimeCost != nil {
		spec.Costs = &CostModel{
			ComponentCost: *o.ComponentCost,
			RepairmanCost: *o.RepairmanCost,
			DowntimeCost:  *o.DowntimeCost,
		}
	}
	return spec, true
}

// ValidationCase converts the bundle into a single solver-vs-simulator
// check. The simulation block sets the effort; without one the default
// validation effort applies. The case is named after the scenario, falling
// back to the parameter encoding the default suite uses.
func (b *ScenarioBundle) ValidationCase() (ValidationCase, error) {
	cfg, err := b.SystemConfig()
	if err != nil {
		return ValidationCase{}, err
	}
	spec, ok := b.SimulationSpec()
	if !ok {
		spec = DefaultValidationSpec
	}
	name := b.Name
	if name == "" {
		name = caseName(cfg)
	}
	return ValidationCase{
		Name:      name,
		Config:    cfg,
		Spec:      spec,
		Tolerance: DefaultTolerance,
	}, nil
}

// Validate checks the bundle beyond YAML well-formedness: the system block
// must form a valid config, optional blocks must hold valid bounds, and any
// costs present must be non-negative.
func (b *ScenarioBundle) Validate() error {
	if _, err := b.SystemConfig(); err != nil {
		return err
	}
	if spec, ok := b.SimulationSpec(); ok {
		if err := spec.Validate(); err != nil {
			return err
		}
	}
	if ospec, ok := b.OptimizeSpec(); ok {
		if err := ospec.Costs.Validate(); err != nil {
			return err
		}
		if ospec.GridSize(b.System.MinOperational) == 0 {
			return fmt.Errorf("optimization grid is empty: max_components=%d max_repairmen=%d with k=%d: %w",
				ospec.MaxComponents, ospec.MaxRepairmen, b.System.MinOperational, ErrInvalidConfig)
		}
	}
	return nil
}
