// Package tcellplane exposes a tcell.Screen as a fade surface and host
package tcellplane

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/terminal"
)

// Screen adapts tcell to the fade surface and host contracts
// Colors tcell reports as unset (default, reset, none) are treated as default channels
type Screen struct {
	screen tcell.Screen

	mu   sync.Mutex
	base plane.Cell
}

// New wraps an initialized tcell screen
func New(screen tcell.Screen) *Screen {
	return &Screen{
		screen: screen,
		base:   plane.Cell{Rune: ' ', Channels: plane.DefaultChannels},
	}
}

// Dim returns rows and columns; tcell reports width first
func (s *Screen) Dim() (rows, cols int) {
	w, h := s.screen.Size()
	return h, w
}

func (s *Screen) inBounds(y, x int) bool {
	rows, cols := s.Dim()
	return y >= 0 && y < rows && x >= 0 && x < cols
}

// Channels reads the colors of the cell at (y, x)
func (s *Screen) Channels(y, x int) plane.Channels {
	if !s.inBounds(y, x) {
		return plane.DefaultChannels
	}
	_, _, style, _ := s.screen.GetContent(x, y)
	return channelsOf(style)
}

// SetFg rewrites the foreground of (y, x) keeping glyph and attributes
func (s *Screen) SetFg(y, x int, c terminal.RGB) {
	if !s.inBounds(y, x) {
		return
	}
	mainc, combc, style, _ := s.screen.GetContent(x, y)
	s.screen.SetContent(x, y, mainc, combc, style.Foreground(toColor(c)))
}

// SetBg rewrites the background of (y, x) keeping glyph and attributes
func (s *Screen) SetBg(y, x int, c terminal.RGB) {
	if !s.inBounds(y, x) {
		return
	}
	mainc, combc, style, _ := s.screen.GetContent(x, y)
	s.screen.SetContent(x, y, mainc, combc, style.Background(toColor(c)))
}

// BaseChannels returns the colors used for cleared cells
func (s *Screen) BaseChannels() plane.Channels {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.Channels
}

// SetBaseFg sets the base foreground; it takes effect on the next Render
func (s *Screen) SetBaseFg(c terminal.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base.Fg = c
}

// SetBaseBg sets the base background; it takes effect on the next Render
func (s *Screen) SetBaseBg(c terminal.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base.Bg = c
}

// ColorMode maps tcell's color count onto a capability
func (s *Screen) ColorMode() terminal.ColorMode {
	return colorModeOf(s.screen.Colors())
}

// Render applies the base style and shows pending changes
func (s *Screen) Render() error {
	s.mu.Lock()
	base := s.base
	s.mu.Unlock()

	s.screen.SetStyle(styleOf(base.Channels))
	s.screen.Show()
	return nil
}

// Draw copies a plane onto the screen, empty cells taking the plane's base cell
// The plane's base cell becomes this screen's base cell
func (s *Screen) Draw(p *plane.Plane) {
	w, h := s.screen.Size()
	cells := make([]terminal.Cell, w*h)
	p.Compose(cells, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if c.Rune == 0 {
				c.Rune = ' '
			}
			s.screen.SetContent(x, y, c.Rune, nil, styleOf(plane.Channels{
				Fg:        c.Fg,
				Bg:        c.Bg,
				FgDefault: c.Attrs&terminal.AttrFgDefault != 0,
				BgDefault: c.Attrs&terminal.AttrBgDefault != 0,
			}))
		}
	}

	s.mu.Lock()
	s.base = p.Base()
	s.mu.Unlock()
}

func colorModeOf(colors int) terminal.ColorMode {
	switch {
	case colors >= 1<<24:
		return terminal.ColorModeTrueColor
	case colors >= 256:
		return terminal.ColorMode256
	case colors >= 8:
		return terminal.ColorMode16
	default:
		return terminal.ColorModeNone
	}
}

func toColor(c terminal.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// fromColor resolves palette and RGB colors; ok is false for unset colors
func fromColor(c tcell.Color) (terminal.RGB, bool) {
	if !c.Valid() {
		return terminal.RGB{}, false
	}
	r, g, b := c.RGB()
	if r < 0 {
		return terminal.RGB{}, false
	}
	return terminal.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, true
}

func channelsOf(style tcell.Style) plane.Channels {
	//nolint:staticcheck // Decompose is the only way to read colors back out of a cell
	fg, bg, _ := style.Decompose()

	var ch plane.Channels
	var ok bool
	if ch.Fg, ok = fromColor(fg); !ok {
		ch.FgDefault = true
	}
	if ch.Bg, ok = fromColor(bg); !ok {
		ch.BgDefault = true
	}
	return ch
}

func styleOf(ch plane.Channels) tcell.Style {
	style := tcell.StyleDefault
	if !ch.FgDefault {
		style = style.Foreground(toColor(ch.Fg))
	}
	if !ch.BgDefault {
		style = style.Background(toColor(ch.Bg))
	}
	return style
}
