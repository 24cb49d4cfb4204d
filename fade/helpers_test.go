package fade

import (
	"sync"
	"time"

	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/terminal"
)

var epoch = time.Unix(1_700_000_000, 0)

// mockHost counts renders and reports a fixed color mode
type mockHost struct {
	mu      sync.Mutex
	mode    terminal.ColorMode
	renders int
	err     error
}

func newMockHost(mode terminal.ColorMode) *mockHost {
	return &mockHost{mode: mode}
}

func (h *mockHost) ColorMode() terminal.ColorMode { return h.mode }

func (h *mockHost) Render() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
	return h.err
}

func (h *mockHost) Renders() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renders
}

// spySurface wraps a plane and records every write
// Writes outside the live extent or the limit extent are flagged
type spySurface struct {
	*plane.Plane
	limitRows, limitCols int

	fgWrites   map[[2]int]int
	bgWrites   map[[2]int]int
	baseFg     int
	baseBg     int
	outOfRange int
}

func newSpy(p *plane.Plane) *spySurface {
	rows, cols := p.Dim()
	return &spySurface{
		Plane:     p,
		limitRows: rows,
		limitCols: cols,
		fgWrites:  make(map[[2]int]int),
		bgWrites:  make(map[[2]int]int),
	}
}

func (s *spySurface) check(y, x int) {
	rows, cols := s.Plane.Dim()
	if y < 0 || x < 0 || y >= rows || x >= cols || y >= s.limitRows || x >= s.limitCols {
		s.outOfRange++
	}
}

func (s *spySurface) SetFg(y, x int, c terminal.RGB) {
	s.check(y, x)
	s.fgWrites[[2]int{y, x}]++
	s.Plane.SetFg(y, x, c)
}

func (s *spySurface) SetBg(y, x int, c terminal.RGB) {
	s.check(y, x)
	s.bgWrites[[2]int{y, x}]++
	s.Plane.SetBg(y, x, c)
}

func (s *spySurface) SetBaseFg(c terminal.RGB) {
	s.baseFg++
	s.Plane.SetBaseFg(c)
}

func (s *spySurface) SetBaseBg(c terminal.RGB) {
	s.baseBg++
	s.Plane.SetBaseBg(c)
}

// steppingCallback advances the clock by one step per tick so every iteration is painted,
// then consults fn; n counts ticks from 1
func steppingCallback(clock *ManualClock, step time.Duration, fn func(n int, s Surface) error) Callback {
	n := 0
	return func(_ Host, s Surface, _ time.Time) error {
		n++
		clock.Advance(step)
		if fn != nil {
			return fn(n, s)
		}
		return nil
	}
}

// filledPlane returns a plane where every cell has the same explicit colors
func filledPlane(rows, cols int, fg, bg terminal.RGB) *plane.Plane {
	p := plane.New(rows, cols)
	p.Fill('#', plane.RGBChannels(fg, bg))
	return p
}
