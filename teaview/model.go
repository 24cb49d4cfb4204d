// Package teaview hosts fades inside a Bubble Tea program
package teaview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/terminal"
)

// FrameMsg asks the program to redraw the plane
type FrameMsg struct{}

// DoneMsg reports the end of the animation
type DoneMsg struct {
	Err error
}

// Model renders a plane as styled text
// The plane is shared with the animating goroutine; its own locking keeps reads safe
type Model struct {
	plane    *plane.Plane
	renderer *lipgloss.Renderer
	styles   map[terminal.Cell]lipgloss.Style
	buffer   []terminal.Cell

	frames   int
	quitting bool
	err      error
}

// NewModel creates a model drawing p through r
func NewModel(p *plane.Plane, r *lipgloss.Renderer) *Model {
	return &Model{
		plane:    p,
		renderer: r,
		styles:   make(map[terminal.Cell]lipgloss.Style),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles quit keys, resizes, frames and completion
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.plane.Resize(msg.Height, msg.Width)
	case FrameMsg:
		m.frames++
	case DoneMsg:
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

// View draws every cell; empty cells resolve through the base cell
func (m *Model) View() string {
	rows, cols := m.plane.Dim()
	if rows == 0 || cols == 0 {
		return ""
	}
	if cap(m.buffer) < rows*cols {
		m.buffer = make([]terminal.Cell, rows*cols)
	}
	m.buffer = m.buffer[:rows*cols]
	m.plane.Compose(m.buffer, cols, rows)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range m.buffer[y*cols : (y+1)*cols] {
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteString(m.style(c).Render(string(r)))
		}
	}
	return sb.String()
}

// style caches one lipgloss style per distinct color pair
func (m *Model) style(c terminal.Cell) lipgloss.Style {
	key := terminal.Cell{Fg: c.Fg, Bg: c.Bg, Attrs: c.Attrs}
	if st, ok := m.styles[key]; ok {
		return st
	}

	st := m.renderer.NewStyle()
	if c.Attrs&terminal.AttrFgDefault == 0 {
		st = st.Foreground(lipgloss.Color(c.Fg.Hex()))
	}
	if c.Attrs&terminal.AttrBgDefault == 0 {
		st = st.Background(lipgloss.Color(c.Bg.Hex()))
	}
	m.styles[key] = st
	return st
}

// Frames returns the number of frames received
func (m *Model) Frames() int {
	return m.frames
}

// Quitting reports whether the user asked to leave
func (m *Model) Quitting() bool {
	return m.quitting
}

// Err returns the animation error delivered by DoneMsg
func (m *Model) Err() error {
	return m.err
}
