// Package trace provides event-trace recording for simulation analysis.
// It holds pure data types and has no dependencies on sim/.
package trace

// EventKind labels the two transitions of a repairable-system trajectory.
type EventKind string

const (
	// EventFailure marks a working unit failing.
	EventFailure EventKind = "failure"

	// EventRepair marks a repair completing.
	EventRepair EventKind = "repair"
)

// EventRecord captures a single simulated transition. Operational reflects
// the system state during the interval leading up to the event; Working,
// Queued and BusyRepairmen are counts after the transition was applied.
// Failed units are always either queued or under repair, so the failed
// count is Queued + BusyRepairmen.
type EventRecord struct {
	Sequence      int       // 1-based position within the recorded window
	Clock         float64   // simulated time of the event
	Delta         float64   // time since the previous event
	Kind          EventKind // failure or repair
	Component     int       // index of the unit the event happened to
	Operational   bool      // system had >= k working units before the event
	Working       int       // working units after the event
	Queued        int       // components waiting for a repairman after the event
	BusyRepairmen int       // repairs in progress after the event
}
