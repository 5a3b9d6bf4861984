package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/availsim/availsim/sim"
)

// solveCmd computes the stationary distribution and availability analytically.
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute stationary availability analytically",
	Long: `Solve the birth-death balance equations of the configured system and
print the stationary failed-count distribution with its availability.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := systemConfig()
		dist, err := sim.Solve(cfg)
		if err != nil {
			logrus.Fatalf("solve failed: %v", err)
		}
		displayDistribution(cfg, dist)
	},
}

func init() {
	addSystemFlags(solveCmd)
	rootCmd.AddCommand(solveCmd)
}
