package fade

import (
	"time"

	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/terminal"
)

// Surface is the cell grid being animated
// Reads return owned copies; setters write one explicit channel and never change default flags
type Surface interface {
	Dim() (rows, cols int)
	Channels(y, x int) plane.Channels
	SetFg(y, x int, c terminal.RGB)
	SetBg(y, x int, c terminal.RGB)

	// Base cell: the off-grid fallback animated alongside the grid
	BaseChannels() plane.Channels
	SetBaseFg(c terminal.RGB)
	SetBaseBg(c terminal.RGB)
}

// Host owns the surface: reports color capability and renders frames
type Host interface {
	ColorMode() terminal.ColorMode
	Render() error
}

// Callback replaces the default render-and-sleep at the end of each tick
// deadline is the absolute time the next iteration begins
// A non-nil return aborts the animation and is returned unchanged by the entry point
type Callback func(host Host, s Surface, deadline time.Time) error
