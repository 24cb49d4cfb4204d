package tcellplane

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/planefade/fade"
	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/terminal"
)

// colorScreen overrides the color count reported by the simulation screen
type colorScreen struct {
	tcell.Screen
	colors int
}

func (c colorScreen) Colors() int { return c.colors }

func newSimScreen(t *testing.T, w, h, colors int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("sim init: %v", err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(w, h)
	return New(colorScreen{Screen: sim, colors: colors}), sim
}

func TestColorMode(t *testing.T) {
	tests := []struct {
		colors int
		want   terminal.ColorMode
	}{
		{1 << 24, terminal.ColorModeTrueColor},
		{256, terminal.ColorMode256},
		{88, terminal.ColorMode16},
		{16, terminal.ColorMode16},
		{8, terminal.ColorMode16},
		{0, terminal.ColorModeNone},
	}
	for _, tt := range tests {
		s, _ := newSimScreen(t, 1, 1, tt.colors)
		if got := s.ColorMode(); got != tt.want {
			t.Errorf("Colors()=%d: ColorMode() = %v, want %v", tt.colors, got, tt.want)
		}
	}
}

func TestChannelsRoundTrip(t *testing.T) {
	s, sim := newSimScreen(t, 4, 2, 1<<24)

	if rows, cols := s.Dim(); rows != 2 || cols != 4 {
		t.Fatalf("Dim() = %dx%d, want 2x4", rows, cols)
	}

	sim.SetContent(1, 0, 'q', nil, tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(10, 20, 30)).
		Background(tcell.ColorReset))
	sim.SetContent(2, 1, 'p', nil, tcell.StyleDefault.Foreground(tcell.ColorRed))

	if got := s.Channels(0, 1); got != (plane.Channels{Fg: terminal.RGB{R: 10, G: 20, B: 30}, BgDefault: true}) {
		t.Errorf("Channels(0,1) = %+v", got)
	}
	if got := s.Channels(1, 2); got.FgDefault || got.Fg != (terminal.RGB{R: 255}) || !got.BgDefault {
		t.Errorf("palette red = %+v, want explicit #ff0000", got)
	}
	if got := s.Channels(0, 0); got != plane.DefaultChannels {
		t.Errorf("untouched cell = %+v, want default", got)
	}
	if got := s.Channels(5, 5); got != plane.DefaultChannels {
		t.Errorf("out of bounds = %+v, want default", got)
	}

	s.SetBg(0, 1, terminal.RGB{B: 99})
	s.SetFg(9, 9, terminal.RGB{R: 1})
	mainc, _, style, _ := sim.GetContent(1, 0)
	if mainc != 'q' {
		t.Errorf("glyph changed to %q", mainc)
	}
	//nolint:staticcheck
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(10, 20, 30) || bg != tcell.NewRGBColor(0, 0, 99) {
		t.Errorf("style after SetBg: fg=%v bg=%v", fg, bg)
	}
}

func TestDrawAndFade(t *testing.T) {
	s, sim := newSimScreen(t, 3, 2, 1<<24)

	p := plane.New(2, 3)
	p.PutString(0, 0, "abc", plane.RGBChannels(terminal.RGB{R: 201}, terminal.RGB{G: 100}))
	p.SetBase(plane.Cell{Rune: '.', Channels: plane.FgOnly(terminal.RGB{B: 50})})
	s.Draw(p)

	if mainc, _, _, _ := sim.GetContent(1, 1); mainc != '.' {
		t.Errorf("empty cell drawn as %q, want base glyph", mainc)
	}
	if got := s.BaseChannels(); got != plane.FgOnly(terminal.RGB{B: 50}) {
		t.Errorf("BaseChannels() = %+v", got)
	}

	// An odd step count lets deadline-to-deadline waits land on the last iteration
	clock := fade.NewManualClock(time.Unix(0, 0))
	err := fade.FadeOut(context.Background(), s, s, 200*time.Millisecond, fade.WithClock(clock))
	if err != nil {
		t.Fatalf("FadeOut: %v", err)
	}

	for x := 0; x < 3; x++ {
		if got := s.Channels(0, x); got != (plane.Channels{}) {
			t.Errorf("(0,%d) = %+v, want explicit black", x, got)
		}
	}
	if got := s.Channels(1, 0); got != plane.FgOnly(terminal.RGBBlack) {
		t.Errorf("(1,0) = %+v, want black over default", got)
	}
	if got := s.BaseChannels(); got != plane.FgOnly(terminal.RGBBlack) {
		t.Errorf("base after fade = %+v", got)
	}

	cells, w, h := sim.GetContents()
	if w != 3 || h != 2 || len(cells) != 6 {
		t.Fatalf("sim contents %dx%d (%d cells)", w, h, len(cells))
	}
	if string(cells[0].Runes) != "a" {
		t.Errorf("shown glyph = %q, want a", string(cells[0].Runes))
	}
}
