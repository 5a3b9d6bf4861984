package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/availsim/availsim/sim"
)

// scenarioCmd runs a complete analysis described by a YAML scenario file.
var scenarioCmd = &cobra.Command{
	Use:   "scenario <file.yaml>",
	Short: "Run a complete analysis from a scenario file",
	Long: `Load a YAML scenario bundle and run every analysis it describes: the
analytical solve always, a simulation when the file has a simulation block,
and a grid search when it has an optimization block with all three costs.
See examples/ for runnable scenario files.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bundle, err := sim.LoadScenario(args[0])
		if err != nil {
			logrus.Fatalf("loading scenario: %v", err)
		}
		cfg, err := bundle.SystemConfig()
		if err != nil {
			logrus.Fatalf("scenario system: %v", err)
		}

		if bundle.Name != "" {
			fmt.Printf("Scenario: %s\n\n", bundle.Name)
		}

		dist, err := sim.Solve(cfg)
		if err != nil {
			logrus.Fatalf("solve failed: %v", err)
		}
		displayDistribution(cfg, dist)

		if spec, ok := bundle.SimulationSpec(); ok {
			simulator, err := sim.NewSimulator(cfg, spec)
			if err != nil {
				logrus.Fatalf("simulate failed: %v", err)
			}
			fmt.Println()
			displayMetrics(spec, simulator.Run())
		}

		if ospec, ok := bundle.OptimizeSpec(); ok {
			fmt.Println()
			if ospec.Costs == nil {
				fmt.Println("Optimization: cost parameters missing, skipped.")
				return
			}
			bar := newProgressBar(ospec.GridSize(cfg.MinOperational), "Evaluating configurations")
			ospec.Progress = func() { bar.Add(1) }
			result, err := sim.Optimize(cfg, ospec)
			if err != nil {
				logrus.Fatalf("optimize failed: %v", err)
			}
			if result == nil {
				fmt.Println("No feasible configuration found.")
				return
			}
			displayOptimization(result)
		}
	},
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
}
