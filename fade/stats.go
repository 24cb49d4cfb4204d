package fade

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/planefade/status"
)

// Metric keys written when a registry is configured
const (
	StatTicks     = "fade.ticks"
	StatSkipped   = "fade.skipped"
	StatIteration = "fade.iteration"
	StatMaxSteps  = "fade.max_steps"
	StatAborts    = "fade.aborts"
	StatRunsIn    = "fade.runs.in"
	StatRunsOut   = "fade.runs.out"
	StatCycles    = "pulse.cycles"
	StatStepMs    = "fade.step_ms"
	StatElapsedMs = "fade.elapsed_ms"
	StatLastError = "fade.last_error"
)

// meter caches metric pointers; a nil meter records nothing
type meter struct {
	ticks     *atomic.Int64
	skipped   *atomic.Int64
	iteration *atomic.Int64
	maxSteps  *atomic.Int64
	aborts    *atomic.Int64
	runsIn    *atomic.Int64
	runsOut   *atomic.Int64
	cycles    *atomic.Int64
	stepMs    *status.AtomicFloat
	elapsedMs *status.AtomicFloat
	lastErr   *status.AtomicString
}

func newMeter(r *status.Registry) *meter {
	if r == nil {
		return nil
	}
	return &meter{
		ticks:     r.Ints.Get(StatTicks),
		skipped:   r.Ints.Get(StatSkipped),
		iteration: r.Ints.Get(StatIteration),
		maxSteps:  r.Ints.Get(StatMaxSteps),
		aborts:    r.Ints.Get(StatAborts),
		runsIn:    r.Ints.Get(StatRunsIn),
		runsOut:   r.Ints.Get(StatRunsOut),
		cycles:    r.Ints.Get(StatCycles),
		stepMs:    r.Floats.Get(StatStepMs),
		elapsedMs: r.Floats.Get(StatElapsedMs),
		lastErr:   r.Strings.Get(StatLastError),
	}
}

func (m *meter) calibrated(snap *Snapshot) {
	if m == nil {
		return
	}
	m.maxSteps.Store(int64(snap.MaxSteps()))
	m.stepMs.Store(float64(snap.StepDuration()) / float64(time.Millisecond))
}

func (m *meter) run(dir Direction) {
	if m == nil {
		return
	}
	if dir == TowardZero {
		m.runsOut.Add(1)
	} else {
		m.runsIn.Add(1)
	}
}

// tick counts a painted iteration and any iterations the clock jumped over
func (m *meter) tick(iteration, previous int) {
	if m == nil {
		return
	}
	m.ticks.Add(1)
	m.iteration.Store(int64(iteration))
	if gap := iteration - previous - 1; gap > 0 {
		m.skipped.Add(int64(gap))
	}
}

// finished adds the wall time of a completed run; pulse accumulates across runs
func (m *meter) finished(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.elapsedMs.Add(float64(elapsed) / float64(time.Millisecond))
}

func (m *meter) cycle() {
	if m == nil {
		return
	}
	m.cycles.Add(1)
}

func (m *meter) abort(err error) {
	if m == nil || err == nil {
		return
	}
	m.aborts.Add(1)
	m.lastErr.Store(err.Error())
}
