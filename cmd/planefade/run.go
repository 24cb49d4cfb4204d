package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/lixenwraith/planefade/config"
	"github.com/lixenwraith/planefade/fade"
	"github.com/lixenwraith/planefade/pattern"
	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/screen"
	"github.com/lixenwraith/planefade/status"
	"github.com/lixenwraith/planefade/tcellplane"
	"github.com/lixenwraith/planefade/teaview"
	"github.com/lixenwraith/planefade/terminal"
)

// session carries what every backend needs to run one animation
type session struct {
	cfg    *config.Config
	effect teaview.Effect
	opts   []fade.Option
	hold   time.Duration
	logger *slog.Logger
}

func runEffect(cmd *cobra.Command, f *flags, effect string) error {
	cfg, err := resolveConfig(cmd, f, effect)
	if err != nil {
		return err
	}
	if f.writeConfig != "" {
		if err := config.Save(f.writeConfig, cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "settings written to %s\n", f.writeConfig)
		return nil
	}

	logger, logFile := setupLogging(cfg.LogDir, cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	reg := status.NewRegistry()
	s := &session{
		cfg:    cfg,
		effect: effectFunc(cfg.Effect),
		opts:   []fade.Option{fade.WithLogger(logger), fade.WithStats(reg)},
		hold:   f.hold,
		logger: logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("animation starting",
		"effect", cfg.Effect,
		"backend", cfg.Backend,
		"duration", cfg.Duration,
		"pattern", cfg.Pattern,
	)

	switch cfg.Backend {
	case "tcell":
		err = s.runTcell(ctx)
	case "tea":
		err = s.runTea(ctx)
	default:
		err = s.runANSI(ctx)
	}
	logger.Info("animation finished", "error", err)

	if f.stats {
		reg.WriteTo(cmd.ErrOrStderr())
	}
	return finishError(cmd, cfg.Effect, err)
}

func effectFunc(name string) teaview.Effect {
	switch name {
	case "out":
		return fade.FadeOut
	case "pulse":
		return fade.Pulse
	default:
		return fade.FadeIn
	}
}

// finishError turns expected endings into a clean exit
func finishError(cmd *cobra.Command, effect string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fade.ErrCanceled):
		return nil
	case effect == "in" && err == fade.ErrUnsupportedColorMode:
		fmt.Fprintln(cmd.ErrOrStderr(), "terminal cannot fade: image shown without animation")
		return nil
	}
	return err
}

// drawPattern fills p with the configured image
func drawPattern(p *plane.Plane, cfg *config.Config) error {
	rows, cols := p.Dim()
	img, err := pattern.Generate(cfg.Pattern, cols, rows, cfg.Text)
	if err != nil {
		return err
	}
	if cfg.DefaultBg {
		for i := range img.Cells {
			img.Cells[i].RenderBg = false
		}
		img.Base.RenderBg = false
	}
	img.Apply(p, 0, 0)
	return nil
}

// forcedMode overrides the capability a host reports
type forcedMode struct {
	fade.Host
	mode terminal.ColorMode
}

func (f forcedMode) ColorMode() terminal.ColorMode { return f.mode }

func colorModeOverride(cfg *config.Config) (terminal.ColorMode, bool) {
	mode, ok, _ := terminal.ParseColorMode(cfg.ColorMode)
	return mode, ok
}

// watchQuit cancels when a quit key arrives on input
func watchQuit(ctx context.Context, input <-chan []byte, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-input:
			if !ok {
				return
			}
			if terminal.IsQuitKey(data) {
				cancel()
				return
			}
		}
	}
}

// holdFrame keeps the final frame visible for d or until ctx ends
func holdFrame(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (s *session) runANSI(ctx context.Context) error {
	mode, ok := colorModeOverride(s.cfg)
	if !ok {
		mode = terminal.DetectColorMode()
	}

	scr, err := screen.New(terminal.New(mode), s.logger)
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer scr.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go scr.WatchResize(ctx)
	go watchQuit(ctx, scr.Input(), cancel)

	if err := drawPattern(scr.Std(), s.cfg); err != nil {
		return err
	}
	if s.cfg.Effect == "out" {
		if err := scr.Render(); err != nil {
			return err
		}
	}

	if err := s.effect(ctx, scr, scr.Std(), s.cfg.Duration, s.opts...); err != nil {
		return err
	}
	holdFrame(ctx, s.hold)
	return nil
}

func (s *session) runTcell(ctx context.Context) error {
	ts, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell: %w", err)
	}
	if err := ts.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	defer ts.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go pollTcell(ts, cancel)

	surface := tcellplane.New(ts)
	w, h := ts.Size()
	p := plane.New(h, w)
	if err := drawPattern(p, s.cfg); err != nil {
		return err
	}
	surface.Draw(p)

	var host fade.Host = surface
	if mode, ok := colorModeOverride(s.cfg); ok {
		host = forcedMode{Host: surface, mode: mode}
	}
	if s.cfg.Effect == "out" {
		if err := host.Render(); err != nil {
			return err
		}
	}

	if err := s.effect(ctx, host, surface, s.cfg.Duration, s.opts...); err != nil {
		return err
	}
	holdFrame(ctx, s.hold)
	return nil
}

// pollTcell cancels on a quit key; it returns once the screen is finalized
func pollTcell(ts tcell.Screen, cancel context.CancelFunc) {
	for {
		switch ev := ts.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
				cancel()
			}
		case *tcell.EventResize:
			ts.Sync()
		}
	}
}

func (s *session) runTea(ctx context.Context) error {
	cols, rows, err := xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		cols, rows = 80, 24
	}

	p := plane.New(rows, cols)
	if err := drawPattern(p, s.cfg); err != nil {
		return err
	}
	return teaview.Run(ctx, p, s.effect, s.cfg.Duration, s.opts...)
}
