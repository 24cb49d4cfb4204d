// Package screen binds a standard plane to a raw terminal and renders it
package screen

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/terminal"
)

// ErrClosed is returned by Render after Close
var ErrClosed = errors.New("screen: closed")

// Screen owns the terminal and the standard plane covering it
// Render and Resize may be called from different goroutines
type Screen struct {
	term   terminal.Terminal
	std    *plane.Plane
	logger *slog.Logger

	mu     sync.Mutex
	buffer []terminal.Cell
	width  int
	height int
	frames int
	closed bool
}

// New initializes term and creates a standard plane matching its size
func New(term terminal.Terminal, logger *slog.Logger) (*Screen, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := term.Init(); err != nil {
		return nil, err
	}

	w, h := term.Size()
	s := &Screen{
		term:   term,
		std:    plane.New(h, w),
		logger: logger,
		buffer: make([]terminal.Cell, w*h),
		width:  w,
		height: h,
	}
	logger.Debug("screen ready", "width", w, "height", h, "color_mode", term.ColorMode().String())
	return s, nil
}

// Std returns the plane covering the whole terminal
func (s *Screen) Std() *plane.Plane {
	return s.std
}

// ColorMode reports the terminal's color capability
func (s *Screen) ColorMode() terminal.ColorMode {
	return s.term.ColorMode()
}

// Input returns raw keyboard input, closed when the screen closes
func (s *Screen) Input() <-chan []byte {
	return s.term.Input()
}

// Size returns the current render extent
func (s *Screen) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Frames returns how many frames were flushed
func (s *Screen) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Render composes the standard plane and flushes it to the terminal
func (s *Screen) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.std.Compose(s.buffer, s.width, s.height)
	if err := s.term.Flush(s.buffer, s.width, s.height); err != nil {
		return err
	}
	s.frames++
	return nil
}

// Resize changes the render extent and the standard plane, then forces a full redraw
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || (width == s.width && height == s.height) {
		return
	}

	s.width, s.height = width, height
	if cap(s.buffer) >= width*height {
		s.buffer = s.buffer[:width*height]
	} else {
		s.buffer = make([]terminal.Cell, width*height)
	}
	s.std.Resize(height, width)

	if err := s.term.Sync(); err != nil {
		s.logger.Warn("sync after resize failed", "error", err)
	}
	s.logger.Debug("screen resized", "width", width, "height", height)
}

// WatchResize applies terminal resize events until ctx ends
func (s *Screen) WatchResize(ctx context.Context) {
	resizeCh := s.term.ResizeChan()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-resizeCh:
			s.Resize(ev.Width, ev.Height)
		}
	}
}

// Close restores the terminal; safe to call more than once
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.term.Fini()
}
