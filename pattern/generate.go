package pattern

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/planefade/terminal"
)

// Shade ramp from sparse to dense
var shades = []rune(" .:-=+*#%@")

// Generator builds a pattern covering width x height
type Generator func(width, height int, text string) PatternResult

var generators = map[string]Generator{
	"gradient": Gradient,
	"rainbow":  Rainbow,
	"banner":   Banner,
	"plasma":   Plasma,
}

// Names lists registered generators
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name selects a generator; case is ignored
func Has(name string) bool {
	_, ok := generators[strings.ToLower(name)]
	return ok
}

// Generate runs the named generator
func Generate(name string, width, height int, text string) (PatternResult, error) {
	gen, ok := generators[strings.ToLower(name)]
	if !ok {
		return PatternResult{}, fmt.Errorf("unknown pattern %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return gen(max(width, 0), max(height, 0), text), nil
}

func toRGB(c colorful.Color) terminal.RGB {
	r, g, b := c.Clamped().RGB255()
	return terminal.RGB{R: r, G: g, B: b}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Gradient blends two colors in Lab space from left to right, darkening toward the bottom
// The text, if any, is drawn on the middle row over the gradient
func Gradient(width, height int, text string) PatternResult {
	from, to := mustHex("#1b2a6b"), mustHex("#f2a541")
	result := PatternResult{
		Width:  width,
		Height: height,
		Cells:  make([]PatternCell, 0, width*height),
		Base:   PatternCell{Rune: ' ', Bg: toRGB(from), RenderBg: true},
	}

	for y := 0; y < height; y++ {
		shade := 1.0
		if height > 1 {
			shade = 1 - 0.5*float64(y)/float64(height-1)
		}
		for x := 0; x < width; x++ {
			t := 0.0
			if width > 1 {
				t = float64(x) / float64(width-1)
			}
			bg := from.BlendLab(to, t)
			h, s, v := bg.Hsv()
			result.Cells = append(result.Cells, PatternCell{
				OffsetX:  x,
				OffsetY:  y,
				Rune:     ' ',
				Bg:       toRGB(colorful.Hsv(h, s, v*shade)),
				RenderBg: true,
			})
		}
	}

	if text == "" {
		return result
	}

	// Text keeps the gradient behind it
	banner := Banner(width, height, text)
	for i, cell := range banner.Cells {
		if cell.OffsetX < 0 || cell.OffsetX >= width || cell.OffsetY < 0 || cell.OffsetY >= height {
			continue
		}
		banner.Cells[i].Bg = result.Cells[cell.OffsetY*width+cell.OffsetX].Bg
		banner.Cells[i].RenderBg = true
	}
	return Merge(result, banner)
}

// Rainbow sweeps hue across columns with a shaded glyph per row on the default background
func Rainbow(width, height int, _ string) PatternResult {
	result := PatternResult{
		Width:  width,
		Height: height,
		Cells:  make([]PatternCell, 0, width*height),
		Base:   PatternCell{Rune: ' '},
	}

	for y := 0; y < height; y++ {
		glyph := shades[len(shades)-1]
		if height > 1 {
			glyph = shades[1+(len(shades)-2)*y/(height-1)]
		}
		for x := 0; x < width; x++ {
			hue := 0.0
			if width > 0 {
				hue = 360 * float64(x) / float64(width)
			}
			result.Cells = append(result.Cells, PatternCell{
				OffsetX:  x,
				OffsetY:  y,
				Rune:     glyph,
				Fg:       toRGB(colorful.Hsv(hue, 0.85, 1)),
				RenderFg: true,
			})
		}
	}
	return result
}

// Banner centers text lines with a warm-to-cool Hcl ramp across characters
// Only glyphs are colored: backgrounds stay default
func Banner(width, height int, text string) PatternResult {
	if text == "" {
		text = "planefade"
	}
	lines := strings.Split(text, "\n")

	result := PatternResult{Width: width, Height: height, Base: PatternCell{Rune: ' '}}
	top := (height - len(lines)) / 2

	for i, line := range lines {
		runes := []rune(line)
		left := (width - len(runes)) / 2
		for j, r := range runes {
			if r == ' ' {
				continue
			}
			t := 0.0
			if len(runes) > 1 {
				t = float64(j) / float64(len(runes)-1)
			}
			result.Cells = append(result.Cells, PatternCell{
				OffsetX:  left + j,
				OffsetY:  top + i,
				Rune:     r,
				Fg:       toRGB(colorful.Hcl(30+240*t, 0.6, 0.75)),
				RenderFg: true,
			})
		}
	}
	return result
}

// Plasma fills every cell with interfering sine waves on both channels
func Plasma(width, height int, _ string) PatternResult {
	result := PatternResult{
		Width:  width,
		Height: height,
		Cells:  make([]PatternCell, 0, width*height),
		Base:   PatternCell{Rune: ' ', RenderFg: true, RenderBg: true},
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx, fy := float64(x), float64(y)*2 // cells are roughly twice as tall as wide
			v := math.Sin(fx/8) + math.Sin(fy/6) + math.Sin((fx+fy)/10) + math.Sin(math.Hypot(fx, fy)/8)
			n := (v + 4) / 8 // 0..1

			result.Cells = append(result.Cells, PatternCell{
				OffsetX:  x,
				OffsetY:  y,
				Rune:     shades[int(n*float64(len(shades)-1))],
				Fg:       toRGB(colorful.Hsv(360*n, 0.7, 1)),
				Bg:       toRGB(colorful.Hsv(math.Mod(360*n+180, 360), 0.8, 0.35)),
				RenderFg: true,
				RenderBg: true,
			})
		}
	}
	return result
}
