// Package tui draws simple widgets into a terminal.Frame.
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/webterm/terminal"
)

// Region is a clipped rectangle of a frame
// All coordinates are relative to the region's origin
type Region struct {
	frame *terminal.Frame
	X, Y  int // Absolute position in the frame
	W, H  int
}

// NewRegion covers the whole frame
func NewRegion(f *terminal.Frame) Region {
	w, h := f.Size()
	return Region{frame: f, W: w, H: h}
}

// Sub returns a nested region, clipped to the parent
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	w = min(w, r.W-x)
	h = min(h, r.H-y)
	return Region{
		frame: r.frame,
		X:     r.X + x,
		Y:     r.Y + y,
		W:     max(w, 0),
		H:     max(h, 0),
	}
}

// Inset returns the region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Rect returns the absolute frame rectangle
func (r Region) Rect() terminal.Rect {
	return terminal.Rect{Col: r.X, Row: r.Y, Width: r.W, Height: r.H}
}

// Cell sets one cell, ignoring writes outside the region
func (r Region) Cell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.frame.SetContent(r.X+x, r.Y+y, ch, nil, style)
}

// Fill sets every cell of the region
func (r Region) Fill(ch rune, style tcell.Style) {
	r.frame.FillRect(r.Rect(), terminal.CellFromStyle(ch, style))
}

// Text writes s at (x, y) and returns the columns used
// Wide runes that would cross the right edge are dropped
func (r Region) Text(x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= r.H {
		return 0
	}
	col := x
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > r.W {
			break
		}
		if col >= 0 {
			r.Cell(col, y, ch, style)
			if w == 2 {
				r.Cell(col+1, y, 0, style)
			}
		}
		col += w
	}
	return col - x
}

// Link writes s like Text and points every written cell at url
func (r Region) Link(x, y int, s, url string, style tcell.Style) int {
	n := r.Text(x, y, s, style)
	for col := max(x, 0); col < x+n; col++ {
		c := r.frame.Cell(r.X+col, r.Y+y)
		c.Link = url
		r.frame.SetCell(r.X+col, r.Y+y, c)
	}
	return n
}

// TextRight writes s right-aligned on row y
func (r Region) TextRight(y int, s string, style tcell.Style) {
	r.Text(r.W-runewidth.StringWidth(s), y, s, style)
}

// TextCenter writes s centered on row y
func (r Region) TextCenter(y int, s string, style tcell.Style) {
	r.Text((r.W-runewidth.StringWidth(s))/2, y, s, style)
}
