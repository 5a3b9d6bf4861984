package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/availsim/availsim/sim"
)

var (
	validateCycles int   // Simulation effort per validation case
	validateWarmup int   // Warm-up events per validation case
	validateSeed   int64 // Seed shared by all validation cases
)

// validateCmd cross-validates the analytical solver against simulation.
var validateCmd = &cobra.Command{
	Use:   "validate [scenario.yaml]",
	Short: "Cross-validate the analytical solver against simulation",
	Long: `Solve and simulate the same configurations and check that the two
availability estimates agree within tolerance. Without an argument this
runs the built-in consistency suite in both standby modes; with a scenario
file it validates that file's system, at the scenario's simulation effort
unless overridden by flags. Exits non-zero if any case fails.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cases, err := validationCases(cmd, args)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		bar := newProgressBar(len(cases), "Cross-validating")
		reports, err := sim.RunSuite(cases, func() { bar.Add(1) })
		if err != nil {
			logrus.Fatalf("validation failed to run: %v", err)
		}

		if failed := displayValidation(reports); failed > 0 {
			logrus.Fatalf("%d of %d validation cases outside tolerance", failed, len(reports))
		}
	},
}

// validationCases builds the case list: the single case derived from a
// scenario file when one is named, the full default suite otherwise.
// Effort flags set explicitly on the command line win over the scenario's
// simulation block.
func validationCases(cmd *cobra.Command, args []string) ([]sim.ValidationCase, error) {
	if len(args) == 0 {
		cases := sim.DefaultSuite()
		for i := range cases {
			cases[i].Spec = sim.SimulationSpec{Cycles: validateCycles, Warmup: validateWarmup, Seed: validateSeed}
		}
		return cases, nil
	}

	bundle, err := sim.LoadScenario(args[0])
	if err != nil {
		return nil, err
	}
	vc, err := bundle.ValidationCase()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("cycles") {
		vc.Spec.Cycles = validateCycles
	}
	if cmd.Flags().Changed("warmup") {
		vc.Spec.Warmup = validateWarmup
	}
	if cmd.Flags().Changed("seed") {
		vc.Spec.Seed = validateSeed
	}
	return []sim.ValidationCase{vc}, nil
}

func init() {
	validateCmd.Flags().IntVar(&validateCycles, "cycles", sim.DefaultValidationSpec.Cycles, "Events recorded per case")
	validateCmd.Flags().IntVar(&validateWarmup, "warmup", sim.DefaultValidationSpec.Warmup, "Warm-up events per case")
	validateCmd.Flags().Int64Var(&validateSeed, "seed", sim.DefaultValidationSpec.Seed, "Seed shared by all cases")
	rootCmd.AddCommand(validateCmd)
}
