package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/availsim/availsim/sim/trace"
)

func testSpec(cycles, warmup int, seed int64) SimulationSpec {
	return SimulationSpec{Cycles: cycles, Warmup: warmup, Seed: seed}
}

func TestSimulationSpec_Validate(t *testing.T) {
	assert.NoError(t, testSpec(1, 0, 0).Validate())
	assert.ErrorIs(t, testSpec(0, 0, 0).Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, testSpec(100, -1, 0).Validate(), ErrInvalidConfig)
}

func TestNewSimulator_RejectsInvalidInputs(t *testing.T) {
	bad := validWarmConfig()
	bad.RepairRate = 0
	_, err := NewSimulator(bad, testSpec(100, 10, 1))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSimulator(validWarmConfig(), testSpec(0, 0, 1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewSimulator_InitialState(t *testing.T) {
	// GIVEN a warm system, all n units start working
	warm, err := NewSimulator(validWarmConfig(), testSpec(100, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 5, warm.working)
	assert.Equal(t, 0, warm.RepairQ.Len())
	assert.Equal(t, 0.0, warm.Clock)

	// GIVEN a cold system, only the k active units start working
	cfg := validWarmConfig()
	cfg.Mode = ColdStandby
	cold, err := NewSimulator(cfg, testSpec(100, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, cold.working)
	for i, c := range cold.components[3:] {
		assert.Equal(t, statusStandby, c.status, "unit %d should start as a spare", i+3)
	}
}

func TestSimulator_DeterministicForSeed(t *testing.T) {
	// GIVEN two simulators with identical config and spec
	run := func() Metrics {
		s, err := NewSimulator(validWarmConfig(), testSpec(5000, 500, 42))
		require.NoError(t, err)
		return s.Run()
	}

	// THEN the runs produce bit-identical metrics
	assert.Equal(t, run(), run())
}

func TestSimulator_SeedsDiverge(t *testing.T) {
	runWith := func(seed int64) Metrics {
		s, err := NewSimulator(validWarmConfig(), testSpec(5000, 500, seed))
		require.NoError(t, err)
		return s.Run()
	}

	assert.NotEqual(t, runWith(1).Availability, runWith(2).Availability)
}

func TestSimulator_EventAccounting(t *testing.T) {
	// GIVEN a run bounded at 100 warm-up plus 500 recorded events
	s, err := NewSimulator(validWarmConfig(), testSpec(500, 100, 7))
	require.NoError(t, err)
	m := s.Run()

	// THEN every event in the budget fires: a valid config always has an
	// armed clock, so the trajectory never starves
	assert.Equal(t, 600, m.Events)
	assert.Equal(t, 500, m.RecordedEvents)
	assert.Greater(t, m.ObservedTime, 0.0)
	assert.Greater(t, s.Clock, m.ObservedTime, "warm-up time counts toward the clock but not the observation window")
}

func TestSimulator_TracksAnalyticalAvailability(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping million-event estimate in short mode")
	}

	tests := []struct {
		name string
		cfg  SystemConfig
		want float64
	}{
		{
			name: "cold redundant fleet",
			cfg: SystemConfig{
				Components: 5, MinOperational: 3, Repairmen: 3,
				FailureRate: 2, RepairRate: 3, Mode: ColdStandby,
			},
			want: 15.0 / 19,
		},
		{
			name: "warm understaffed repair pool",
			cfg: SystemConfig{
				Components: 5, MinOperational: 3, Repairmen: 2,
				FailureRate: 2, RepairRate: 3, Mode: WarmStandby,
			},
			want: 711.0 / 1391,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSimulator(tt.cfg, testSpec(1_000_000, 10_000, 42))
			require.NoError(t, err)
			m := s.Run()
			assert.InEpsilon(t, tt.want, m.Availability, 0.05,
				"simulated %f vs analytical %f", m.Availability, tt.want)
		})
	}
}

func TestSimulator_TraceInvariants(t *testing.T) {
	// GIVEN a loaded cold system with a tight repair pool
	cfg := SystemConfig{
		Components: 5, MinOperational: 3, Repairmen: 2,
		FailureRate: 3, RepairRate: 2, Mode: ColdStandby,
	}
	s, err := NewSimulator(cfg, testSpec(2000, 200, 11))
	require.NoError(t, err)
	st := trace.NewSimulationTrace()
	s.AttachTrace(st)
	m := s.Run()

	// THEN exactly the recorded events appear in the trace
	require.Equal(t, m.RecordedEvents, st.Len())

	budget := cfg.Spares() + 1
	prevClock := 0.0
	sumDelta := 0.0
	for i, e := range st.Events {
		assert.Equal(t, i+1, e.Sequence, "sequence must be dense and 1-based")
		assert.GreaterOrEqual(t, e.Clock, prevClock, "clock must not run backwards")
		assert.GreaterOrEqual(t, e.Delta, 0.0)
		prevClock = e.Clock
		sumDelta += e.Delta

		assert.Contains(t, []trace.EventKind{trace.EventFailure, trace.EventRepair}, e.Kind)
		assert.GreaterOrEqual(t, e.Component, 0)
		assert.Less(t, e.Component, cfg.Components)

		assert.LessOrEqual(t, e.BusyRepairmen, cfg.Repairmen, "never more repairs than repairmen")
		assert.GreaterOrEqual(t, e.BusyRepairmen, 0)
		assert.GreaterOrEqual(t, e.Queued, 0)

		// Cold standby freezes failures once the system is down, so the
		// failed count never exceeds the failure budget n-k+1.
		failed := e.Queued + e.BusyRepairmen
		assert.LessOrEqual(t, failed, budget, "event %d: cold failure budget exceeded", i)

		// Cold mode never runs more than the k required units.
		assert.LessOrEqual(t, e.Working, cfg.MinOperational)
		assert.GreaterOrEqual(t, e.Working, cfg.MinOperational-1)
	}

	// AND the trace time adds up to the observation window
	assert.InDelta(t, m.ObservedTime, sumDelta, 1e-9)
}

func TestSimulator_TraceAgreesWithMetrics(t *testing.T) {
	cfg := validWarmConfig()
	s, err := NewSimulator(cfg, testSpec(5000, 500, 3))
	require.NoError(t, err)
	st := trace.NewSimulationTrace()
	s.AttachTrace(st)
	m := s.Run()

	summary := trace.Summarize(st)
	assert.Equal(t, m.RecordedEvents, summary.TotalEvents)
	assert.Equal(t, summary.TotalEvents, summary.FailureCount+summary.RepairCount)

	// Down time in the trace is the complement of the availability integral.
	assert.InDelta(t, (1-m.Availability)*m.ObservedTime, summary.DownTime, 1e-6)
}

func TestSimulator_FullRepairPoolNeverQueues(t *testing.T) {
	// GIVEN one repairman per unit, no failure ever waits
	cfg := SystemConfig{
		Components: 4, MinOperational: 2, Repairmen: 4,
		FailureRate: 2, RepairRate: 1, Mode: WarmStandby,
	}
	s, err := NewSimulator(cfg, testSpec(5000, 500, 5))
	require.NoError(t, err)
	st := trace.NewSimulationTrace()
	s.AttachTrace(st)
	m := s.Run()

	assert.Equal(t, 0.0, m.MeanQueueLength)
	assert.Equal(t, 0.0, m.MeanWaitTime)
	for _, e := range st.Events {
		assert.Equal(t, 0, e.Queued)
	}
}

func TestSimulator_ScarceRepairPoolQueues(t *testing.T) {
	// GIVEN a single repairman under heavy failure load
	cfg := SystemConfig{
		Components: 4, MinOperational: 2, Repairmen: 1,
		FailureRate: 5, RepairRate: 1, Mode: WarmStandby,
	}
	s, err := NewSimulator(cfg, testSpec(5000, 500, 5))
	require.NoError(t, err)
	m := s.Run()

	assert.Greater(t, m.MeanQueueLength, 0.0)
	assert.Greater(t, m.MeanWaitTime, 0.0)
	assert.Less(t, m.Availability, 0.5, "this system is mostly down")
}
