package terminal

import (
	"errors"
	"io"
	"os"
	"sync"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrFgDefault Attr = 1 << 6 // Fg is ignored, terminal default foreground is used
	AttrBgDefault Attr = 1 << 7 // Bg is ignored, terminal default background is used
)

// AttrStyle masks only the style bits (excludes default color flags)
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// ErrNotInitialized is returned by output calls before Init or after Fini
var ErrNotInitialized = errors.New("terminal: not initialized")

// Terminal provides low-level terminal access
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ResizeChan returns channel that receives resize events
	ResizeChan() <-chan ResizeEvent

	// Input returns channel of raw input chunks, closed on Fini
	Input() <-chan []byte

	// ColorMode returns the color capability output is encoded for
	ColorMode() ColorMode

	// Flush writes cell buffer to terminal
	// Cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int) error

	// Sync clears the screen and forces a full redraw on next Flush
	Sync() error
}

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Width  int
	Height int
}

// termImpl implements Terminal using the Backend interface
type termImpl struct {
	backend Backend

	output   *outputBuffer
	resizeCh chan ResizeEvent
	inputCh  chan []byte
	stopCh   chan struct{}
	doneCh   chan struct{}

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal on stdin/stdout
// Without an explicit mode the capability is detected from the environment
func New(colorMode ...ColorMode) Terminal {
	c := DetectColorMode()
	if len(colorMode) > 0 {
		c = colorMode[0]
	}
	return NewWithBackend(newBackend(), c)
}

// NewWithBackend creates a Terminal on a caller-provided backend
func NewWithBackend(b Backend, colorMode ColorMode) Terminal {
	return &termImpl{
		backend:  b,
		output:   newOutputBuffer(writerFunc(b.Write), colorMode),
		resizeCh: make(chan ResizeEvent, 1),
		inputCh:  make(chan []byte, 16),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// writerFunc adapts Backend.Write to io.Writer
type writerFunc func(p []byte) error

func (f writerFunc) Write(p []byte) (int, error) {
	if err := f(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	w, h := t.backend.Size()
	t.output.resize(w, h)

	t.backend.SetResizeHandler(func(w, h int) {
		// Keep only the latest pending size
		select {
		case <-t.resizeCh:
		default:
		}
		select {
		case t.resizeCh <- ResizeEvent{Width: w, Height: h}:
		default:
		}
	})

	t.backend.Write(csiAltScreenEnter)
	t.backend.Write(csiCursorHide)
	t.backend.Write(csiAutoWrapOff)

	if err := t.output.clear(); err != nil {
		return err
	}

	go t.readLoop()

	t.initialized = true
	return nil
}

// readLoop forwards raw input until Fini
func (t *termImpl) readLoop() {
	defer close(t.doneCh)
	defer close(t.inputCh)

	for {
		data, err := t.backend.Read(t.stopCh)
		if err != nil || data == nil {
			return
		}
		select {
		case t.inputCh <- data:
		case <-t.stopCh:
			return
		}
	}
}

// Fini restores terminal state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	close(t.stopCh)
	<-t.doneCh

	t.backend.Write(csiCursorShow)
	t.backend.Write(csiAltScreenExit)
	// Wrap goes back on after leaving the alternate screen so the main buffer keeps it
	t.backend.Write(csiAutoWrapOn)
	t.backend.Write(csiSGR0)

	t.backend.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

// ResizeChan returns the resize event channel
func (t *termImpl) ResizeChan() <-chan ResizeEvent {
	return t.resizeCh
}

// Input returns the raw input channel
func (t *termImpl) Input() <-chan []byte {
	return t.inputCh
}

// ColorMode returns the output color capability
func (t *termImpl) ColorMode() ColorMode {
	return t.output.colorMode
}

// Flush writes cell buffer to terminal
// A frame whose size disagrees with the backend is dropped to avoid tearing during resize
func (t *termImpl) Flush(cells []Cell, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrNotInitialized
	}

	currW, currH := t.backend.Size()
	if currW != width || currH != height {
		return nil
	}

	return t.output.flush(cells, width, height)
}

// Sync forces full redraw
func (t *termImpl) Sync() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrNotInitialized
	}
	return t.output.clear()
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
