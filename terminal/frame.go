package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Frame is the writable surface handed to the draw callback for one frame
// Method shapes follow tcell.Screen so widget code written against tcell draws here unchanged
// Writes outside the grid are clipped; a frame is frozen once Snapshot is taken
type Frame struct {
	width  int
	height int
	cells  []Cell
	cursor Cursor
	frozen bool
}

// NewFrame allocates an empty width x height frame
func NewFrame(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Frame{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Size returns frame dimensions
func (f *Frame) Size() (int, int) {
	return f.width, f.height
}

// Area returns the full frame rectangle
func (f *Frame) Area() Rect {
	return Rect{Width: f.width, Height: f.height}
}

func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// SetCell writes a cell at column x, row y
func (f *Frame) SetCell(x, y int, c Cell) {
	if f.frozen || !f.inBounds(x, y) {
		return
	}
	f.cells[y*f.width+x] = c
}

// Cell returns the cell at column x, row y, zero Cell when out of bounds
func (f *Frame) Cell(x, y int) Cell {
	if !f.inBounds(x, y) {
		return Cell{}
	}
	return f.cells[y*f.width+x]
}

// SetContent writes a rune with a tcell style. Combining runes are ignored
func (f *Frame) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	f.SetCell(x, y, CellFromStyle(primary, style))
}

// GetContent reads a cell back as tcell values. Combining is always nil
func (f *Frame) GetContent(x, y int) (primary rune, combining []rune, style tcell.Style, width int) {
	c := f.Cell(x, y)
	return c.Rune, nil, c.Style(), c.Width()
}

// SetString writes s starting at (x, y) and returns the number of columns advanced
// Wide runes occupy a second, empty continuation cell; writing stops at the right edge
func (f *Frame) SetString(x, y int, s string, style tcell.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > f.width {
			break
		}
		f.SetContent(col, y, r, nil, style)
		if w == 2 {
			f.SetContent(col+1, y, 0, nil, style)
		}
		col += w
	}
	return col - x
}

// SetHyperlink writes text like SetString and marks every written cell with url
func (f *Frame) SetHyperlink(x, y int, text, url string, style tcell.Style) int {
	n := f.SetString(x, y, text, style)
	for col := x; col < x+n; col++ {
		c := f.Cell(col, y)
		c.Link = url
		f.SetCell(col, y, c)
	}
	return n
}

// Fill sets every cell to r with style
func (f *Frame) Fill(r rune, style tcell.Style) {
	if f.frozen {
		return
	}
	c := CellFromStyle(r, style)
	for i := range f.cells {
		f.cells[i] = c
	}
}

// FillRect sets every cell inside rect to c
func (f *Frame) FillRect(rect Rect, c Cell) {
	for y := rect.Row; y < rect.Row+rect.Height; y++ {
		for x := rect.Col; x < rect.Col+rect.Width; x++ {
			f.SetCell(x, y, c)
		}
	}
}

// Clear resets every cell to the empty glyph with default colors
func (f *Frame) Clear() {
	if f.frozen {
		return
	}
	clear(f.cells)
}

// ShowCursor places a visible cursor at (x, y)
func (f *Frame) ShowCursor(x, y int) {
	if f.frozen {
		return
	}
	f.cursor = Cursor{X: x, Y: y, Visible: true}
}

// HideCursor hides the cursor
func (f *Frame) HideCursor() {
	if f.frozen {
		return
	}
	f.cursor.Visible = false
}

// Snapshot freezes the frame and returns its contents as an immutable snapshot
// The frame's buffer is handed over without copying
func (f *Frame) Snapshot() *Snapshot {
	f.frozen = true
	cursor := f.cursor
	if !f.inBounds(cursor.X, cursor.Y) {
		cursor.Visible = false
	}
	return &Snapshot{width: f.width, height: f.height, cells: f.cells, cursor: cursor}
}
