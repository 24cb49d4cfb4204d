// Package pattern generates demo images to fade
package pattern

import (
	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/terminal"
)

// PatternCell holds visual data + offset for one cell
type PatternCell struct {
	OffsetX  int
	OffsetY  int
	Rune     rune
	Fg       terminal.RGB
	Bg       terminal.RGB
	RenderFg bool // false leaves the terminal default foreground
	RenderBg bool // false leaves the terminal default background
}

// channels converts render flags into plane default flags
func (c PatternCell) channels() plane.Channels {
	return plane.Channels{
		Fg:        c.Fg,
		Bg:        c.Bg,
		FgDefault: !c.RenderFg,
		BgDefault: !c.RenderBg,
	}
}

// PatternResult is the output of any pattern generator
type PatternResult struct {
	Cells  []PatternCell
	Width  int // Bounding width
	Height int // Bounding height

	// Base is the fill for cells the pattern does not cover
	Base PatternCell
}

// Apply draws the pattern onto p with its origin at (x0, y0) and installs its base cell
// Cells falling outside p are clipped
func (r *PatternResult) Apply(p *plane.Plane, x0, y0 int) {
	for _, cell := range r.Cells {
		p.Put(y0+cell.OffsetY, x0+cell.OffsetX, cell.Rune, cell.channels())
	}
	p.SetBase(plane.Cell{Rune: r.Base.Rune, Channels: r.Base.channels()})
}

// Count returns number of cells in pattern
func (r *PatternResult) Count() int {
	return len(r.Cells)
}

// Empty returns true if pattern has no cells
func (r *PatternResult) Empty() bool {
	return len(r.Cells) == 0
}
