package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/availsim/availsim/sim"
)

var (
	maxComponents int     // Upper bound for candidate component counts
	maxRepairmen  int     // Upper bound for candidate repairman counts
	componentCost float64 // Cost per component per unit time
	repairmanCost float64 // Cost per repairman per unit time
	downtimeCost  float64 // Cost per unit of system downtime
)

// optimizeCmd searches the (n, s) grid for the cheapest configuration.
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search the (n, s) grid for the cheapest configuration",
	Long: `Evaluate every candidate pairing of component count in [k, max-components]
and repairman count in [1, max-repairmen] under the given unit costs, and
print the configuration with the lowest total cost per unit time. All three
cost flags must be provided; ties prefer fewer components, then fewer
repairmen.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := systemConfig()

		var costs *sim.CostModel
		if cmd.Flags().Changed("component-cost") &&
			cmd.Flags().Changed("repairman-cost") &&
			cmd.Flags().Changed("downtime-cost") {
			costs = &sim.CostModel{
				ComponentCost: componentCost,
				RepairmanCost: repairmanCost,
				DowntimeCost:  downtimeCost,
			}
		}

		spec := sim.OptimizeSpec{
			MaxComponents: maxComponents,
			MaxRepairmen:  maxRepairmen,
			Costs:         costs,
		}
		if size := spec.GridSize(cfg.MinOperational); size > 0 && costs != nil {
			bar := newProgressBar(size, "Evaluating configurations")
			spec.Progress = func() { bar.Add(1) }
		}

		result, err := sim.Optimize(cfg, spec)
		if err != nil {
			logrus.Fatalf("optimize failed: %v", err)
		}
		if result == nil {
			fmt.Println("No feasible configuration found: provide all three cost flags and a non-empty grid.")
			return
		}
		displayOptimization(result)
	},
}

func init() {
	addSystemFlags(optimizeCmd)
	optimizeCmd.Flags().IntVar(&maxComponents, "max-components", 10, "Largest component count to consider")
	optimizeCmd.Flags().IntVar(&maxRepairmen, "max-repairmen", 5, "Largest repairman count to consider")
	optimizeCmd.Flags().Float64Var(&componentCost, "component-cost", 0, "Cost per component per unit time")
	optimizeCmd.Flags().Float64Var(&repairmanCost, "repairman-cost", 0, "Cost per repairman per unit time")
	optimizeCmd.Flags().Float64Var(&downtimeCost, "downtime-cost", 0, "Cost per unit of system downtime")
	rootCmd.AddCommand(optimizeCmd)
}
