package teaview

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/lixenwraith/planefade/fade"
	"github.com/lixenwraith/planefade/terminal"
)

// Host forwards renders to a Bubble Tea program
type Host struct {
	send    func(tea.Msg)
	profile termenv.Profile
	clock   fade.Clock
}

// NewHost creates a host posting frames through send
// A nil clock uses the system clock
func NewHost(send func(tea.Msg), profile termenv.Profile, clock fade.Clock) *Host {
	if clock == nil {
		clock = fade.SystemClock{}
	}
	return &Host{send: send, profile: profile, clock: clock}
}

// ColorMode maps the output's termenv profile onto a capability
func (h *Host) ColorMode() terminal.ColorMode {
	switch h.profile {
	case termenv.TrueColor:
		return terminal.ColorModeTrueColor
	case termenv.ANSI256:
		return terminal.ColorMode256
	case termenv.ANSI:
		return terminal.ColorMode16
	default:
		return terminal.ColorModeNone
	}
}

// Render schedules a redraw; the program paints asynchronously
func (h *Host) Render() error {
	h.send(FrameMsg{})
	return nil
}

// Callback posts a frame and then waits for the deadline or for ctx to end
// Quitting the program cancels ctx, which aborts the fade at the next tick
func (h *Host) Callback(ctx context.Context) fade.Callback {
	return func(host fade.Host, _ fade.Surface, deadline time.Time) error {
		if err := host.Render(); err != nil {
			return err
		}
		if err := h.clock.SleepUntil(ctx, deadline); err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("%w: %w", fade.ErrCanceled, ctx.Err())
			}
			return err
		}
		return nil
	}
}
