package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"

	sim "github.com/availsim/availsim/sim"
	"github.com/availsim/availsim/sim/trace"
)

// probability formats a probability with six decimals.
func probability(p float64) string {
	return humanize.FormatFloat("#.######", p)
}

// newProgressBar builds the stderr progress bar used by the longer-running
// subcommands.
func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(15),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}

// displayDistribution renders the stationary distribution with the system
// state per failed count, followed by the availability.
func displayDistribution(cfg sim.SystemConfig, dist sim.StationaryDistribution) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Failed Units", "Probability", "System State"})
	for j, p := range dist {
		state := "up"
		if cfg.Components-j < cfg.MinOperational {
			state = "down"
		}
		table.Append([]string{
			fmt.Sprintf("%d", j),
			probability(p),
			state,
		})
	}
	table.Render()
	fmt.Printf("\nAvailability: %s\n", probability(dist.SumThrough(cfg.Spares())))
}

// displayMetrics renders the simulation estimate next to the run's
// time-weighted statistics.
func displayMetrics(spec sim.SimulationSpec, metrics sim.Metrics) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Estimated availability", probability(metrics.Availability)})
	table.Append([]string{"Observed time", humanize.FormatFloat("#,###.##", metrics.ObservedTime)})
	table.Append([]string{"Operational time", humanize.FormatFloat("#,###.##", metrics.OperationalTime)})
	table.Append([]string{"Mean operational units", humanize.FormatFloat("#.###", metrics.MeanOperationalUnits)})
	table.Append([]string{"Mean busy repairmen", humanize.FormatFloat("#.###", metrics.MeanBusyRepairmen)})
	table.Append([]string{"Mean queue length", humanize.FormatFloat("#.###", metrics.MeanQueueLength)})
	table.Append([]string{"Mean repair wait", humanize.FormatFloat("#.####", metrics.MeanWaitTime)})
	table.Append([]string{"Events (recorded)", fmt.Sprintf("%s (%s)",
		humanize.Comma(int64(metrics.Events)), humanize.Comma(int64(metrics.RecordedEvents)))})
	table.Append([]string{"Seed", fmt.Sprintf("%d", spec.Seed)})
	table.Render()
}

// displayOptimization renders the winning candidate of a grid search.
func displayOptimization(result *sim.OptimizationResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Components", "Repairmen", "Availability", "Total Cost"})
	table.Append([]string{
		fmt.Sprintf("%d", result.Components),
		fmt.Sprintf("%d", result.Repairmen),
		probability(result.Availability),
		humanize.FormatFloat("#,###.####", result.TotalCost),
	})
	table.Render()
}

// displayValidation renders one row per cross-validation case and returns
// the number of cases outside tolerance.
func displayValidation(reports []sim.ValidationReport) int {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Case", "Analytical", "Simulated", "Rel. Diff", "Result"})
	failed := 0
	for _, r := range reports {
		result := "PASS"
		if !r.Pass {
			result = "FAIL"
			failed++
		}
		table.Append([]string{
			r.Case.Name,
			probability(r.Analytical),
			probability(r.Simulated),
			humanize.FormatFloat("#.####", r.RelativeDiff),
			result,
		})
	}
	table.Render()
	return failed
}

// displayTraceSummary renders the aggregate view of a recorded event trace.
func displayTraceSummary(summary *trace.TraceSummary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Trace Statistic", "Value"})
	table.Append([]string{"Recorded events", humanize.Comma(int64(summary.TotalEvents))})
	table.Append([]string{"Failures", humanize.Comma(int64(summary.FailureCount))})
	table.Append([]string{"Repairs", humanize.Comma(int64(summary.RepairCount))})
	table.Append([]string{"Outages", humanize.Comma(int64(summary.Outages))})
	table.Append([]string{"Down time", humanize.FormatFloat("#,###.##", summary.DownTime)})
	table.Append([]string{"Longest outage", humanize.FormatFloat("#.####", summary.LongestOutage)})
	table.Append([]string{"Max queue length", fmt.Sprintf("%d", summary.MaxQueueLength)})
	table.Render()
}
