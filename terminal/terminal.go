package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone          Attr = 0
	AttrBold          Attr = 1 << 0
	AttrDim           Attr = 1 << 1
	AttrItalic        Attr = 1 << 2
	AttrUnderline     Attr = 1 << 3
	AttrBlink         Attr = 1 << 4
	AttrReverse       Attr = 1 << 5
	AttrStrikethrough Attr = 1 << 6
	AttrHidden        Attr = 1 << 7
)

// AttrFont masks the bits that select a font face
const AttrFont Attr = AttrBold | AttrItalic

// Has reports whether all bits of mask are set
func (a Attr) Has(mask Attr) bool {
	return a&mask == mask
}

// Cell represents a single terminal cell
// Rune 0 is the empty glyph; color zero values are tcell.ColorDefault
type Cell struct {
	Rune  rune
	Fg    tcell.Color
	Bg    tcell.Color
	Attrs Attr
	// Link is the hyperlink target, empty for plain cells
	Link string
}

// Glyph returns the displayable text of the cell, a space for the empty glyph
func (c Cell) Glyph() string {
	if c.Rune == 0 {
		return " "
	}
	return string(c.Rune)
}

// Blank reports whether the cell paints no glyph
func (c Cell) Blank() bool {
	return c.Rune == 0 || c.Rune == ' ' || c.Attrs&AttrHidden != 0
}

// Width returns the number of grid columns the glyph occupies (1 or 2)
func (c Cell) Width() int {
	if c.Rune == 0 {
		return 1
	}
	w := runewidth.RuneWidth(c.Rune)
	if w < 1 {
		return 1
	}
	return w
}

// IsBraille reports whether the glyph is in the braille patterns block
func (c Cell) IsBraille() bool {
	return c.Rune >= 0x2800 && c.Rune <= 0x28FF
}

// Cursor is the terminal cursor as set by the draw callback
type Cursor struct {
	X, Y    int
	Visible bool
}

// Position addresses one cell of a grid
type Position struct {
	Row int
	Col int
}

// Rect is a cell-aligned rectangle
type Rect struct {
	Col, Row      int
	Width, Height int
}

// Empty reports whether the rectangle covers no cell
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Position) bool {
	return p.Col >= r.Col && p.Col < r.Col+r.Width && p.Row >= r.Row && p.Row < r.Row+r.Height
}

// Union returns the smallest rectangle covering r and p
func (r Rect) Union(p Position) Rect {
	if r.Empty() {
		return Rect{Col: p.Col, Row: p.Row, Width: 1, Height: 1}
	}
	minCol, minRow := min(r.Col, p.Col), min(r.Row, p.Row)
	maxCol := max(r.Col+r.Width, p.Col+1)
	maxRow := max(r.Row+r.Height, p.Row+1)
	return Rect{Col: minCol, Row: minRow, Width: maxCol - minCol, Height: maxRow - minRow}
}
