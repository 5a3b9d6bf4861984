package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents    int
	FailureCount   int
	RepairCount    int
	Outages        int     // maximal runs of non-operational intervals
	DownTime       float64 // total recorded time spent non-operational
	LongestOutage  float64 // duration of the longest single outage
	MaxQueueLength int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	down := false
	outage := 0.0
	for _, e := range st.Events {
		switch e.Kind {
		case EventFailure:
			summary.FailureCount++
		case EventRepair:
			summary.RepairCount++
		}
		if e.Queued > summary.MaxQueueLength {
			summary.MaxQueueLength = e.Queued
		}

		// Operational describes the interval before the event, so a run of
		// non-operational records is one outage.
		if e.Operational {
			down = false
			outage = 0
			continue
		}
		summary.DownTime += e.Delta
		outage += e.Delta
		if !down {
			summary.Outages++
			down = true
		}
		if outage > summary.LongestOutage {
			summary.LongestOutage = outage
		}
	}

	return summary
}
