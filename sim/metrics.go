// Tracks time-weighted statistics accumulated over one simulation run.

package sim

// Metrics aggregates statistics about a simulation run for final reporting.
// All integrals cover only the post-warm-up window; the reported means are
// derived from them by Finalize.
type Metrics struct {
	Availability float64 // operational fraction of observed time

	ObservedTime    float64 // total recorded simulated time
	OperationalTime float64 // recorded time with at least k units working

	MeanOperationalUnits float64 // time-weighted mean working unit count
	MeanBusyRepairmen    float64 // time-weighted mean repairs in progress
	MeanQueueLength      float64 // time-weighted mean repair-queue length
	MeanWaitTime         float64 // mean failure-to-repair-start delay (diagnostic)

	Events         int // events simulated, warm-up included
	RecordedEvents int // events past the warm-up threshold

	operationalUnitTime float64 // integral of working count over time
	busyRepairTime      float64 // integral of busy repairmen over time
	queueLengthTime     float64 // integral of queue length over time
	waitTimeSum         float64 // sum of failure-to-repair-start delays
	repairsStarted      int     // repairs started in the recorded window
}

// record accumulates one observed interval weighted by the state that held
// during it.
func (m *Metrics) record(delta float64, operational bool, working, busy, queued int) {
	m.ObservedTime += delta
	if operational {
		m.OperationalTime += delta
	}
	m.operationalUnitTime += float64(working) * delta
	m.busyRepairTime += float64(busy) * delta
	m.queueLengthTime += float64(queued) * delta
	m.RecordedEvents++
}

// recordWait accumulates one failure-to-repair-start delay. Repairs that
// start the moment the unit fails contribute a zero wait.
func (m *Metrics) recordWait(wait float64) {
	m.waitTimeSum += wait
	m.repairsStarted++
}

// Finalize derives the reported means from the accumulated integrals.
// A run that observed no time reports zero availability.
func (m *Metrics) Finalize() {
	if m.ObservedTime > 0 {
		m.Availability = m.OperationalTime / m.ObservedTime
		m.MeanOperationalUnits = m.operationalUnitTime / m.ObservedTime
		m.MeanBusyRepairmen = m.busyRepairTime / m.ObservedTime
		m.MeanQueueLength = m.queueLengthTime / m.ObservedTime
	}
	if m.repairsStarted > 0 {
		m.MeanWaitTime = m.waitTimeSum / float64(m.repairsStarted)
	}
}
