package plane

import (
	"sync"

	"github.com/lixenwraith/planefade/terminal"
)

// Plane is a rectangular grid of cells plus one off-grid base cell
// The base cell supplies glyph and colors for empty cells
// All methods are safe for concurrent use; a resize may race with readers and writers
type Plane struct {
	mu    sync.RWMutex
	cells []Cell // row-major: cells[y*cols + x]
	rows  int
	cols  int
	base  Cell
}

// New creates an empty plane; negative dimensions are clamped to zero
func New(rows, cols int) *Plane {
	rows, cols = max(rows, 0), max(cols, 0)
	p := &Plane{
		cells: make([]Cell, rows*cols),
		rows:  rows,
		cols:  cols,
		base:  Cell{Rune: ' ', Channels: DefaultChannels},
	}
	for i := range p.cells {
		p.cells[i].Channels = DefaultChannels
	}
	return p
}

// Dim returns the current extent
func (p *Plane) Dim() (rows, cols int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rows, p.cols
}

// inBounds must be called with the lock held
func (p *Plane) inBounds(y, x int) bool {
	return y >= 0 && y < p.rows && x >= 0 && x < p.cols
}

// Cell returns the cell at (y, x); ok is false outside the grid
func (p *Plane) Cell(y, x int) (c Cell, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.inBounds(y, x) {
		return Cell{}, false
	}
	return p.cells[y*p.cols+x], true
}

// Channels returns the colors at (y, x)
// Outside the grid both channels read as default, which callers treat as untouchable
func (p *Plane) Channels(y, x int) Channels {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.inBounds(y, x) {
		return DefaultChannels
	}
	return p.cells[y*p.cols+x].Channels
}

// SetFg writes an explicit foreground, leaving the default flag as is
func (p *Plane) SetFg(y, x int, c terminal.RGB) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inBounds(y, x) {
		p.cells[y*p.cols+x].Fg = c
	}
}

// SetBg writes an explicit background, leaving the default flag as is
func (p *Plane) SetBg(y, x int, c terminal.RGB) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inBounds(y, x) {
		p.cells[y*p.cols+x].Bg = c
	}
}

// SetFgDefault marks the foreground at (y, x) as default or explicit
func (p *Plane) SetFgDefault(y, x int, isDefault bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inBounds(y, x) {
		p.cells[y*p.cols+x].FgDefault = isDefault
	}
}

// SetBgDefault marks the background at (y, x) as default or explicit
func (p *Plane) SetBgDefault(y, x int, isDefault bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inBounds(y, x) {
		p.cells[y*p.cols+x].BgDefault = isDefault
	}
}

// Put writes a glyph with colors; returns false outside the grid
func (p *Plane) Put(y, x int, r rune, ch Channels) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inBounds(y, x) {
		return false
	}
	p.cells[y*p.cols+x] = Cell{Rune: r, Channels: ch}
	return true
}

// PutString writes s left to right from (y, x), clipped at the right edge
// Returns the number of cells written
func (p *Plane) PutString(y, x int, s string, ch Channels) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, r := range s {
		if !p.inBounds(y, x) {
			break
		}
		p.cells[y*p.cols+x] = Cell{Rune: r, Channels: ch}
		x++
		n++
	}
	return n
}

// Fill sets every grid cell to the same glyph and colors
func (p *Plane) Fill(r rune, ch Channels) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.cells) == 0 {
		return
	}
	p.cells[0] = Cell{Rune: r, Channels: ch}
	for filled := 1; filled < len(p.cells); filled *= 2 {
		copy(p.cells[filled:], p.cells[:filled])
	}
}

// Base returns the base cell
func (p *Plane) Base() Cell {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.base
}

// BaseChannels returns the base cell's colors
func (p *Plane) BaseChannels() Channels {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.base.Channels
}

// SetBase replaces the base cell; a zero rune is stored as a space
func (p *Plane) SetBase(c Cell) {
	if c.Rune == 0 {
		c.Rune = ' '
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = c
}

// SetBaseFg writes the base cell's explicit foreground
func (p *Plane) SetBaseFg(c terminal.RGB) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base.Fg = c
}

// SetBaseBg writes the base cell's explicit background
func (p *Plane) SetBaseBg(c terminal.RGB) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base.Bg = c
}

// Resize changes the extent, keeping the overlapping region
// New cells are empty with default colors
func (p *Plane) Resize(rows, cols int) {
	rows, cols = max(rows, 0), max(cols, 0)

	p.mu.Lock()
	defer p.mu.Unlock()

	if rows == p.rows && cols == p.cols {
		return
	}

	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i].Channels = DefaultChannels
	}
	keepRows, keepCols := min(rows, p.rows), min(cols, p.cols)
	for y := 0; y < keepRows; y++ {
		copy(cells[y*cols:y*cols+keepCols], p.cells[y*p.cols:y*p.cols+keepCols])
	}

	p.cells = cells
	p.rows = rows
	p.cols = cols
}

// Compose writes the plane into a row-major terminal cell buffer at the origin
// The plane is clipped to width x height; buffer cells outside the plane get the base cell
func (p *Plane) Compose(dst []terminal.Cell, width, height int) {
	if len(dst) < width*height {
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	base := toTerminal(p.base, p.base)
	for y := 0; y < height; y++ {
		row := dst[y*width : y*width+width]
		for x := range row {
			if y < p.rows && x < p.cols {
				row[x] = toTerminal(p.cells[y*p.cols+x], p.base)
			} else {
				row[x] = base
			}
		}
	}
}

// toTerminal resolves an empty cell through the base cell
func toTerminal(c, base Cell) terminal.Cell {
	if c.Rune == 0 {
		c = base
	}
	return terminal.Cell{
		Rune:  c.Rune,
		Fg:    c.Fg,
		Bg:    c.Bg,
		Attrs: c.attrs(),
	}
}
