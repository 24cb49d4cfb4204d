package fade

import (
	"fmt"
	"time"

	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/terminal"
)

// MaxSnapshotCells bounds snapshot storage, including the base cell entry
const MaxSnapshotCells = 1 << 24

// Direction selects the interpolation formula
type Direction uint8

const (
	TowardOriginal Direction = iota // fade-in: c * i / max
	TowardZero                      // fade-out: c * (max - i) / max
)

func (d Direction) String() string {
	if d == TowardZero {
		return "out"
	}
	return "in"
}

// factor returns the numerator applied against maxSteps
func (d Direction) factor(iteration, maxSteps int) int {
	if d == TowardZero {
		return maxSteps - iteration
	}
	return iteration
}

// Snapshot is an immutable copy of a plane's colors plus the fade schedule derived from it
type Snapshot struct {
	// Grid in row-major order followed by one entry for the base cell
	channels []plane.Channels
	rows     int
	cols     int

	maxFg terminal.RGB
	maxBg terminal.RGB

	maxSteps int
	stepDur  time.Duration
	start    time.Time
}

// Capture copies every cell's channels and the base cell's in a single pass
// start is taken after the copy so capture cost is not part of the animation
func Capture(s Surface, duration time.Duration, clock Clock) (*Snapshot, error) {
	rows, cols := s.Dim()
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: extent %dx%d", ErrSnapshotAlloc, rows, cols)
	}
	if cols > 0 && rows > (MaxSnapshotCells-1)/cols {
		return nil, fmt.Errorf("%w: %dx%d cells exceeds %d", ErrSnapshotAlloc, rows, cols, MaxSnapshotCells-1)
	}

	snap := &Snapshot{
		channels: make([]plane.Channels, rows*cols+1),
		rows:     rows,
		cols:     cols,
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			snap.record(y*cols+x, s.Channels(y, x))
		}
	}
	snap.record(rows*cols, s.BaseChannels())

	snap.maxSteps = int(max(snap.maxFg.Max(), snap.maxBg.Max()))
	if snap.maxSteps == 0 {
		snap.maxSteps = 1
	}

	snap.stepDur = max(duration, 0) / time.Duration(snap.maxSteps)
	if snap.stepDur == 0 {
		snap.stepDur = 1
	}

	snap.start = clock.Now()
	return snap, nil
}

// record stores one entry and folds it into the six maxima
// Maxima read raw channel values regardless of default flags
func (s *Snapshot) record(idx int, ch plane.Channels) {
	s.channels[idx] = ch
	s.maxFg = terminal.RGB{
		R: max(s.maxFg.R, ch.Fg.R),
		G: max(s.maxFg.G, ch.Fg.G),
		B: max(s.maxFg.B, ch.Fg.B),
	}
	s.maxBg = terminal.RGB{
		R: max(s.maxBg.R, ch.Bg.R),
		G: max(s.maxBg.G, ch.Bg.G),
		B: max(s.maxBg.B, ch.Bg.B),
	}
}

// Rows returns the captured row count
func (s *Snapshot) Rows() int { return s.rows }

// Cols returns the captured column count
func (s *Snapshot) Cols() int { return s.cols }

// MaxSteps returns the number of iterations in one fade, at least 1
func (s *Snapshot) MaxSteps() int { return s.maxSteps }

// Iterations is the number of iterations one fade spans
func (s *Snapshot) Iterations() int { return s.maxSteps }

// StepDuration returns the time allotted to one iteration, at least 1ns
func (s *Snapshot) StepDuration() time.Duration { return s.stepDur }

// Start returns when iteration 1 began
func (s *Snapshot) Start() time.Time { return s.start }

// MaxFg returns the per-component foreground maxima
func (s *Snapshot) MaxFg() terminal.RGB { return s.maxFg }

// MaxBg returns the per-component background maxima
func (s *Snapshot) MaxBg() terminal.RGB { return s.maxBg }

// Entry returns the captured channels at (y, x); ok is false outside the captured extent
func (s *Snapshot) Entry(y, x int) (plane.Channels, bool) {
	if y < 0 || y >= s.rows || x < 0 || x >= s.cols {
		return plane.Channels{}, false
	}
	return s.channels[y*s.cols+x], true
}

// Base returns the captured base cell channels
func (s *Snapshot) Base() plane.Channels {
	return s.channels[s.rows*s.cols]
}

// IterationAt derives the 1-based iteration in progress at now
// Values above MaxSteps mean the fade is over
func (s *Snapshot) IterationAt(now time.Time) int {
	elapsed := now.Sub(s.start)
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed/s.stepDur) + 1
}

// Deadline returns the absolute wake time after painting iteration: start + (iteration+1) steps
// IterationAt(Deadline(i)) is i+2, so a wake that lands on time skips one iteration
func (s *Snapshot) Deadline(iteration int) time.Time {
	return s.start.Add(time.Duration(iteration+1) * s.stepDur)
}

// restarted returns a view sharing the captured colors with a new start time
func (s *Snapshot) restarted(start time.Time) *Snapshot {
	cp := *s
	cp.start = start
	return &cp
}

// Apply writes one iteration of a fade onto the live surface
// Works on the overlap of captured and live extents, then on the base cell
// iteration is clamped to [0, MaxSteps]
func (s *Snapshot) Apply(live Surface, dir Direction, iteration int) {
	iteration = min(max(iteration, 0), s.maxSteps)
	num := dir.factor(iteration, s.maxSteps)

	// Re-queried every tick: the plane may have been resized since capture
	liveRows, liveCols := live.Dim()
	rows, cols := min(s.rows, liveRows), min(s.cols, liveCols)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			t := target{s: live, y: y, x: x}
			scaleAndApply(s.channels[y*s.cols+x], live.Channels(y, x), num, s.maxSteps, t)
		}
	}

	scaleAndApply(s.Base(), live.BaseChannels(), num, s.maxSteps, target{s: live, base: true})
}

// target addresses one live cell or the base cell
type target struct {
	s    Surface
	base bool
	y, x int
}

func (t target) setFg(c terminal.RGB) {
	if t.base {
		t.s.SetBaseFg(c)
		return
	}
	t.s.SetFg(t.y, t.x, c)
}

func (t target) setBg(c terminal.RGB) {
	if t.base {
		t.s.SetBaseBg(c)
		return
	}
	t.s.SetBg(t.y, t.x, c)
}

// scaleAndApply rewrites each non-default live channel as the captured color times num/maxSteps
// Default flags are read from the live cell: after a resize the slot may hold different content
func scaleAndApply(orig, live plane.Channels, num, maxSteps int, t target) {
	if !live.FgDefault {
		t.setFg(orig.Fg.Scale(num, maxSteps))
	}
	if !live.BgDefault {
		t.setBg(orig.Bg.Scale(num, maxSteps))
	}
}
