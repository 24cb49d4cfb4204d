package plane

import "github.com/lixenwraith/planefade/terminal"

// Channels is the color state of one cell
// Each channel is either an explicit RGB or flagged default (terminal ambient color)
type Channels struct {
	Fg        terminal.RGB
	Bg        terminal.RGB
	FgDefault bool
	BgDefault bool
}

// DefaultChannels has both channels inheriting the terminal's colors
var DefaultChannels = Channels{FgDefault: true, BgDefault: true}

// RGBChannels returns explicit foreground and background colors
func RGBChannels(fg, bg terminal.RGB) Channels {
	return Channels{Fg: fg, Bg: bg}
}

// FgOnly returns an explicit foreground over the default background
func FgOnly(fg terminal.RGB) Channels {
	return Channels{Fg: fg, BgDefault: true}
}

// BgOnly returns an explicit background under the default foreground
func BgOnly(bg terminal.RGB) Channels {
	return Channels{Bg: bg, FgDefault: true}
}

// attrs maps default flags onto terminal cell attributes
func (c Channels) attrs() terminal.Attr {
	var a terminal.Attr
	if c.FgDefault {
		a |= terminal.AttrFgDefault
	}
	if c.BgDefault {
		a |= terminal.AttrBgDefault
	}
	return a
}

// Cell is one grid position: a glyph plus its colors
// Rune 0 marks an empty cell, drawn from the plane's base cell
type Cell struct {
	Rune rune
	Channels
}
