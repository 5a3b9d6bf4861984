package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/availsim/availsim/sim"
)

var (
	logLevel string // Log verbosity level

	// CLI flags shared by the analysis subcommands
	components     int     // n: total number of components
	minOperational int     // k: units required for the system to be up
	repairmen      int     // s: concurrent repair capacity
	failureRate    float64 // lambda: failures per unit time per exposed unit
	repairRate     float64 // mu: repairs per unit time per busy repairman
	standbyMode    string  // "warm" or "cold"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "availsim",
	Short: "Availability analysis for repairable k-out-of-n systems",
	Long: `availsim estimates steady-state availability for systems of n components
that stay operational while at least k units work, with failed units
restored by a pool of s repairmen. It solves the underlying birth-death
chain analytically, cross-checks the result by Monte-Carlo simulation,
and searches (n, s) grids for minimum-cost configurations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// systemConfig assembles a SystemConfig from the shared flags. Validation
// happens inside the library entry points, which report the offending field.
func systemConfig() sim.SystemConfig {
	mode, err := sim.ParseStandbyMode(standbyMode)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	return sim.SystemConfig{
		Components:     components,
		MinOperational: minOperational,
		Repairmen:      repairmen,
		FailureRate:    failureRate,
		RepairRate:     repairRate,
		Mode:           mode,
	}
}

// addSystemFlags registers the shared system parameter flags on a subcommand.
func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&components, "components", "n", 1, "Total number of components")
	cmd.Flags().IntVarP(&minOperational, "min-operational", "k", 1, "Units required for the system to be up")
	cmd.Flags().IntVarP(&repairmen, "repairmen", "s", 1, "Number of repairmen")
	cmd.Flags().Float64Var(&failureRate, "failure-rate", 0, "Component failure rate (failures per unit time)")
	cmd.Flags().Float64Var(&repairRate, "repair-rate", 0, "Repair rate per busy repairman (repairs per unit time)")
	cmd.Flags().StringVar(&standbyMode, "mode", "warm", "Standby mode for spare units (warm, cold)")
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up the persistent root flags
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
