package teaview

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/planefade/fade"
	"github.com/lixenwraith/planefade/plane"
)

// Effect is the signature shared by fade.FadeIn, fade.FadeOut and fade.Pulse
type Effect func(ctx context.Context, host fade.Host, s fade.Surface, d time.Duration, opts ...fade.Option) error

// Run shows p full screen and animates it with effect until it finishes or the user quits
// Quitting early is not an error
func Run(ctx context.Context, p *plane.Plane, effect Effect, d time.Duration, opts ...fade.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := lipgloss.NewRenderer(os.Stdout)
	model := NewModel(p, renderer)
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	host := NewHost(prog.Send, renderer.ColorProfile(), nil)

	opts = append(opts, fade.WithCallback(host.Callback(ctx)))
	fadeErr := make(chan error, 1)
	go func() {
		err := effect(ctx, host, p, d, opts...)
		prog.Send(DoneMsg{Err: err})
		fadeErr <- err
	}()

	_, runErr := prog.Run()
	cancel()
	err := <-fadeErr

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	if errors.Is(err, fade.ErrCanceled) {
		return nil
	}
	return err
}
