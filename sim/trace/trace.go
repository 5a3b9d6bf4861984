package trace

// SimulationTrace collects per-event records during a simulation run.
// Recording is opt-in: a simulation without a trace attached pays no
// recording cost.
type SimulationTrace struct {
	Events []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace() *SimulationTrace {
	return &SimulationTrace{
		Events: make([]EventRecord, 0),
	}
}

// RecordEvent appends one transition record.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	st.Events = append(st.Events, record)
}

// Len returns the number of recorded events.
func (st *SimulationTrace) Len() int {
	return len(st.Events)
}
