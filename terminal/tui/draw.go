package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// LineType selects a box drawing set
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
	LineHeavy                   // ┏━┓┃┗┛
)

var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
}

const (
	boxTL = iota
	boxH
	boxTR
	boxV
	boxBL
	boxBR
)

const (
	progressFull  = '█'
	progressHalf  = '▌'
	progressEmpty = '░'
)

var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Box draws a border on the region edge
func (r Region) Box(line LineType, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if int(line) >= len(boxChars) {
		line = LineSingle
	}
	chars := boxChars[line]

	r.Cell(0, 0, chars[boxTL], style)
	r.Cell(r.W-1, 0, chars[boxTR], style)
	r.Cell(0, r.H-1, chars[boxBL], style)
	r.Cell(r.W-1, r.H-1, chars[boxBR], style)
	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, chars[boxH], style)
		r.Cell(x, r.H-1, chars[boxH], style)
	}
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, chars[boxV], style)
		r.Cell(r.W-1, y, chars[boxV], style)
	}
}

// Card draws a titled border and returns the inner region
func (r Region) Card(title string, line LineType, style tcell.Style) Region {
	r.Box(line, style)
	if title != "" && r.W > 4 {
		title = runewidth.Truncate(title, r.W-4, "…")
		x := (r.W - runewidth.StringWidth(title) - 2) / 2
		r.Text(x, 0, " "+title+" ", style.Bold(true))
	}
	return r.Inset(1)
}

// Progress draws a horizontal bar of width w filled to pct in [0, 1]
func (r Region) Progress(x, y, w int, pct float64, style tcell.Style) {
	if w <= 0 {
		return
	}
	pct = min(max(pct, 0), 1)
	halves := int(pct * float64(w) * 2)
	for i := 0; i < w; i++ {
		ch := progressEmpty
		switch {
		case halves >= (i+1)*2:
			ch = progressFull
		case halves == i*2+1:
			ch = progressHalf
		}
		r.Cell(x+i, y, ch, style)
	}
}

// Spinner draws the braille spinner glyph for frame n
func (r Region) Spinner(x, y, n int, style tcell.Style) {
	if n < 0 {
		n = -n
	}
	r.Cell(x, y, spinnerFrames[n%len(spinnerFrames)], style)
}
