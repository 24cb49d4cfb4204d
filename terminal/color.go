package terminal

import (
	"fmt"
	"strings"
	"sync"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorModeNone      ColorMode = iota // monochrome, no color addressing
	ColorMode16                         // ANSI 16 colors, no palette addressing
	ColorMode256                        // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// CanFade reports whether colors can be addressed finely enough to interpolate
// Requires direct RGB or an indexed palette
func (m ColorMode) CanFade() bool {
	return m == ColorModeTrueColor || m == ColorMode256
}

func (m ColorMode) String() string {
	switch m {
	case ColorModeNone:
		return "none"
	case ColorMode16:
		return "16"
	case ColorMode256:
		return "256"
	case ColorModeTrueColor:
		return "truecolor"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}

// ParseColorMode resolves a user-facing mode name
// "auto" and "" return ok=false so the caller can fall back to detection
func ParseColorMode(s string) (mode ColorMode, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return 0, false, nil
	case "truecolor", "true", "24bit", "rgb":
		return ColorModeTrueColor, true, nil
	case "256", "palette":
		return ColorMode256, true, nil
	case "16", "ansi":
		return ColorMode16, true, nil
	case "none", "mono", "0":
		return ColorModeNone, true, nil
	}
	return 0, false, fmt.Errorf("unknown color mode %q", s)
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Max returns the brightest component
func (c RGB) Max() uint8 {
	return max(c.R, c.G, c.B)
}

// Scale multiplies each component by num/den with truncation
// Multiplication happens before division so results are bit-exact for all inputs
func (c RGB) Scale(num, den int) RGB {
	if den <= 0 {
		return c
	}
	return RGB{
		R: uint8(int(c.R) * num / den),
		G: uint8(int(c.G) * num / den),
		B: uint8(int(c.B) * num / den),
	}
}

// Hex returns the #rrggbb form
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

var (
	lutOnce   sync.Once
	cubeIndex [256]uint8
)

// buildCubeIndex maps 0-255 to the nearest cube level, once per process
func buildCubeIndex() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			if d := abs(i - int(cubeValues[j])); d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 converts RGB to the nearest 256-color palette index
func RGBTo256(c RGB) uint8 {
	lutOnce.Do(buildCubeIndex)

	cr, cg, cb := cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B]
	cubeIdx := 16 + 36*cr + 6*cg + cb
	cubeDist := abs(int(c.R)-int(cubeValues[cr])) +
		abs(int(c.G)-int(cubeValues[cg])) +
		abs(int(c.B)-int(cubeValues[cb]))

	// Gray ramp 232-255 covers luminance 8..238 in steps of 10
	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	if gray < 4 || gray > 243 {
		return cubeIdx
	}
	grayIdx := (gray - 8 + 5) / 10
	if grayIdx < 0 {
		grayIdx = 0
	}
	if grayIdx > 23 {
		grayIdx = 23
	}
	level := 8 + grayIdx*10
	grayDist := abs(int(c.R)-level) + abs(int(c.G)-level) + abs(int(c.B)-level)
	if grayDist < cubeDist {
		return uint8(grayscaleStart + grayIdx)
	}
	return cubeIdx
}

// RGBTo16 maps RGB to an ANSI 16-color index (0-15)
func RGBTo16(c RGB) uint8 {
	var idx uint8
	if c.R >= 128 {
		idx |= 1
	}
	if c.G >= 128 {
		idx |= 2
	}
	if c.B >= 128 {
		idx |= 4
	}
	if c.Max() >= 192 {
		idx |= 8
	}
	return idx
}
