// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/availsim/availsim/sim/trace"
)

// componentStatus tracks where a unit is in its failure/repair lifecycle.
type componentStatus int

const (
	statusWorking   componentStatus = iota // exposed to failure (the active set in cold mode)
	statusStandby                          // cold spare: failure-immune, no lifetime clock
	statusWaiting                          // failed, queued for a free repairman
	statusRepairing                        // failed, repair in progress
)

// component is the per-unit simulation state. Clocks hold remaining time and
// are only meaningful for the status that arms them.
type component struct {
	status   componentStatus
	lifetime float64 // remaining time to failure (working)
	repair   float64 // remaining repair time (repairing)
	failedAt float64 // clock value of the most recent failure
}

// SimulationSpec bounds one simulation run.
type SimulationSpec struct {
	Cycles int   // events recorded after warm-up (must be >= 1)
	Warmup int   // initial events discarded from statistics (must be >= 0)
	Seed   int64 // master seed for the partitioned RNG
}

// Validate checks the simulation bounds.
func (s SimulationSpec) Validate() error {
	if s.Cycles < 1 {
		return fmt.Errorf("cycle budget must be >= 1, got %d: %w", s.Cycles, ErrInvalidConfig)
	}
	if s.Warmup < 0 {
		return fmt.Errorf("warm-up cycles must be >= 0, got %d: %w", s.Warmup, ErrInvalidConfig)
	}
	return nil
}

// Simulator runs one continuous-time next-event trajectory of a repairable
// k-out-of-n system, as an independent check on the analytical solver.
// A Simulator is single-use: construct, optionally attach a trace, call Run
// once, read the returned Metrics.
type Simulator struct {
	Clock   float64
	Config  SystemConfig
	Spec    SimulationSpec
	Metrics *Metrics

	components []component
	// RepairQ holds failed components while all repairmen are busy
	RepairQ *RepairQueue
	busy    int // repairs in progress, never exceeds Config.Repairmen
	working int // working units (the active set in cold mode)
	failed  int // failed units, waiting or repairing

	lifetimes *ExponentialSampler
	repairs   *ExponentialSampler

	trace     *trace.SimulationTrace
	recording bool
}

// NewSimulator validates the inputs and builds a ready-to-run trajectory.
// The seed fully determines the run: identical config and spec reproduce
// identical Metrics.
func NewSimulator(cfg SystemConfig, spec SimulationSpec) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(spec.Seed))
	lifetimes, err := NewExponentialSampler(cfg.FailureRate, rng.ForSubsystem(SubsystemLifetime))
	if err != nil {
		return nil, err
	}
	repairs, err := NewExponentialSampler(cfg.RepairRate, rng.ForSubsystem(SubsystemRepair))
	if err != nil {
		return nil, err
	}

	sim := &Simulator{
		Config:     cfg,
		Spec:       spec,
		Metrics:    &Metrics{},
		components: make([]component, cfg.Components),
		RepairQ:    &RepairQueue{},
		lifetimes:  lifetimes,
		repairs:    repairs,
	}
	sim.initComponents()
	return sim, nil
}

// initComponents arms the initial lifetime clocks: every unit in warm mode,
// the first k units in cold mode (the rest start as failure-immune spares).
func (sim *Simulator) initComponents() {
	active := sim.Config.Components
	if sim.Config.Mode == ColdStandby {
		active = sim.Config.MinOperational
	}
	for i := range sim.components {
		c := &sim.components[i]
		if i < active {
			c.status = statusWorking
			c.lifetime = sim.lifetimes.Sample()
		} else {
			c.status = statusStandby
		}
	}
	sim.working = active
}

// AttachTrace enables per-event recording for events past the warm-up
// threshold. Must be called before Run. The default (no trace) records
// nothing.
func (sim *Simulator) AttachTrace(st *trace.SimulationTrace) {
	sim.trace = st
}

// Run executes the trajectory until the event budget (warm-up plus recorded
// cycles) is exhausted, then finalizes and returns the run's Metrics.
func (sim *Simulator) Run() Metrics {
	logrus.Debugf("simulating %s standby: n=%d k=%d s=%d lambda=%g mu=%g seed=%d cycles=%d warmup=%d",
		sim.Config.Mode, sim.Config.Components, sim.Config.MinOperational, sim.Config.Repairmen,
		sim.Config.FailureRate, sim.Config.RepairRate, sim.Spec.Seed, sim.Spec.Cycles, sim.Spec.Warmup)

	total := sim.Spec.Warmup + sim.Spec.Cycles
	processed := 0
	for ev := 0; ev < total; ev++ {
		idx, kind, delta := sim.nextEvent()
		if idx < 0 {
			// no armed clock left, nothing can ever happen again
			break
		}
		sim.recording = ev >= sim.Spec.Warmup
		operational := sim.operational()

		sim.advance(delta)
		if sim.recording {
			sim.Metrics.record(delta, operational, sim.working, sim.busy, sim.RepairQ.Len())
		}

		switch kind {
		case trace.EventFailure:
			sim.handleFailure(idx)
		case trace.EventRepair:
			sim.handleRepair(idx)
		}
		sim.traceEvent(kind, idx, delta, operational)
		processed++
	}

	sim.Metrics.Events = processed
	sim.Metrics.Finalize()
	logrus.Debugf("simulation ended at t=%.4f: availability=%.6f over %d recorded events",
		sim.Clock, sim.Metrics.Availability, sim.Metrics.RecordedEvents)
	return *sim.Metrics
}

// operational reports whether at least k units are currently working.
func (sim *Simulator) operational() bool {
	return sim.working >= sim.Config.MinOperational
}

// failuresArmed reports whether lifetime clocks are running. Warm mode keeps
// them armed at all times; cold mode freezes them while the system is down,
// so the failed count never exceeds the failure budget n-k+1.
func (sim *Simulator) failuresArmed() bool {
	if sim.Config.Mode == WarmStandby {
		return true
	}
	return sim.failed <= sim.Config.Spares()
}

// nextEvent finds the earliest pending transition: the minimum remaining
// time over armed lifetime clocks and repair clocks. Failure clocks scan
// before repair clocks and lower component indices win ties, keeping the
// event order deterministic for a fixed seed.
func (sim *Simulator) nextEvent() (idx int, kind trace.EventKind, delta float64) {
	idx = -1
	best := math.Inf(1)
	if sim.failuresArmed() {
		for i := range sim.components {
			c := &sim.components[i]
			if c.status == statusWorking && c.lifetime < best {
				idx, kind, best = i, trace.EventFailure, c.lifetime
			}
		}
	}
	for i := range sim.components {
		c := &sim.components[i]
		if c.status == statusRepairing && c.repair < best {
			idx, kind, best = i, trace.EventRepair, c.repair
		}
	}
	if idx < 0 {
		return -1, "", 0
	}
	return idx, kind, best
}

// advance moves the clock forward and drains delta from every armed clock,
// clamped at zero. Frozen lifetime clocks (cold mode, system down) keep
// their remaining time.
func (sim *Simulator) advance(delta float64) {
	sim.Clock += delta
	armed := sim.failuresArmed()
	for i := range sim.components {
		c := &sim.components[i]
		switch c.status {
		case statusWorking:
			if armed {
				c.lifetime = max(c.lifetime-delta, 0)
			}
		case statusRepairing:
			c.repair = max(c.repair-delta, 0)
		}
	}
}

// handleFailure marks the component failed, refills the active set from the
// cold-spare pool, and either starts repair immediately or queues the unit.
func (sim *Simulator) handleFailure(idx int) {
	c := &sim.components[idx]
	c.status = statusWaiting
	c.failedAt = sim.Clock
	sim.working--
	sim.failed++

	if sim.Config.Mode == ColdStandby {
		sim.promoteStandby()
	}

	if sim.busy < sim.Config.Repairmen {
		sim.startRepair(idx)
	} else {
		sim.RepairQ.Enqueue(idx)
	}
}

// promoteStandby activates the lowest-index cold spare, if one remains.
// No spare remaining means the failure budget is exhausted and the system
// is going down.
func (sim *Simulator) promoteStandby() {
	for i := range sim.components {
		c := &sim.components[i]
		if c.status == statusStandby {
			c.status = statusWorking
			c.lifetime = sim.lifetimes.Sample()
			sim.working++
			return
		}
	}
}

// startRepair moves a failed component onto a free repairman.
func (sim *Simulator) startRepair(idx int) {
	c := &sim.components[idx]
	c.status = statusRepairing
	c.repair = sim.repairs.Sample()
	sim.busy++
	if sim.recording {
		sim.Metrics.recordWait(sim.Clock - c.failedAt)
	}
}

// handleRepair returns a repaired unit to service. Warm mode puts it
// straight back to work; cold mode parks it as a spare unless the active
// set is short of k. Either way the freed repairman takes the oldest
// queued failure, if any.
func (sim *Simulator) handleRepair(idx int) {
	c := &sim.components[idx]
	sim.busy--
	sim.failed--

	switch sim.Config.Mode {
	case WarmStandby:
		c.status = statusWorking
		c.lifetime = sim.lifetimes.Sample()
		sim.working++
	case ColdStandby:
		c.status = statusStandby
		if sim.working < sim.Config.MinOperational {
			c.status = statusWorking
			c.lifetime = sim.lifetimes.Sample()
			sim.working++
		}
	}

	if next := sim.RepairQ.Dequeue(); next >= 0 {
		sim.startRepair(next)
	}
}

// traceEvent appends one record to the attached trace, if recording.
func (sim *Simulator) traceEvent(kind trace.EventKind, idx int, delta float64, operational bool) {
	if sim.trace == nil || !sim.recording {
		return
	}
	sim.trace.RecordEvent(trace.EventRecord{
		Sequence:      sim.Metrics.RecordedEvents,
		Clock:         sim.Clock,
		Delta:         delta,
		Kind:          kind,
		Component:     idx,
		Operational:   operational,
		Working:       sim.working,
		Queued:        sim.RepairQ.Len(),
		BusyRepairmen: sim.busy,
	})
}
