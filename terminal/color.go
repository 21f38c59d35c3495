package terminal

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// CSS returns the color as a CSS rgb() function
func (c RGB) CSS() string {
	return "rgb(" + strconv.Itoa(int(c.R)) + ", " + strconv.Itoa(int(c.G)) + ", " + strconv.Itoa(int(c.B)) + ")"
}

// Hex returns the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Floats returns the color channels normalized to 0..1
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// Blend mixes c toward other by t in [0,1] in RGB space
func (c RGB) Blend(other RGB, t float64) RGB {
	return fromColorful(toColorful(c).BlendRgb(toColorful(other), t))
}

// ParseHex parses #rgb or #rrggbb
func ParseHex(s string) (RGB, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// RGBFromTcell converts a tcell color, returning ok=false for default/reset/invalid colors
func RGBFromTcell(c tcell.Color) (RGB, bool) {
	if c == tcell.ColorDefault || !c.Valid() {
		return RGB{}, false
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return RGB{}, false
	}
	return RGB{uint8(r), uint8(g), uint8(b)}, true
}

// Theme supplies the colors used for tcell.ColorDefault
type Theme struct {
	Foreground RGB
	Background RGB
}

// DefaultTheme is white on black
var DefaultTheme = Theme{Foreground: White, Background: Black}

// CellColors resolves the painted colors of a cell
// bgSet is false when the cell keeps the surface background (default bg, not reversed)
// Reverse swaps fg/bg; defaults swap to theme background on theme foreground
func (t Theme) CellColors(c Cell) (fg, bg RGB, bgSet bool) {
	fg, fgOK := RGBFromTcell(c.Fg)
	bg, bgOK := RGBFromTcell(c.Bg)
	if !fgOK {
		fg = t.Foreground
	}
	if !bgOK {
		bg = t.Background
	}
	bgSet = bgOK
	if c.Attrs&AttrReverse != 0 {
		fg, bg = bg, fg
		bgSet = true
	}
	return fg, bg, bgSet
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}
