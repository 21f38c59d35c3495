package terminal

import "fmt"

// Snapshot is the immutable terminal grid of one frame
// Cells are row-major: cells[row*width + col]
type Snapshot struct {
	width  int
	height int
	cells  []Cell
	cursor Cursor
}

// NewSnapshot copies cells into a new snapshot
// len(cells) must equal width*height
func NewSnapshot(width, height int, cells []Cell) (*Snapshot, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("snapshot %dx%d: negative dimension", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("snapshot %dx%d: got %d cells", width, height, len(cells))
	}
	own := make([]Cell, len(cells))
	copy(own, cells)
	return &Snapshot{width: width, height: height, cells: own}, nil
}

// Width returns the number of columns
func (s *Snapshot) Width() int {
	return s.width
}

// Height returns the number of rows
func (s *Snapshot) Height() int {
	return s.height
}

// Size returns width and height
func (s *Snapshot) Size() (width, height int) {
	return s.width, s.height
}

// Len returns width*height
func (s *Snapshot) Len() int {
	return len(s.cells)
}

// Cursor returns the cursor state recorded by the draw callback
func (s *Snapshot) Cursor() Cursor {
	return s.cursor
}

// InBounds reports whether (row, col) addresses a cell
func (s *Snapshot) InBounds(row, col int) bool {
	return row >= 0 && row < s.height && col >= 0 && col < s.width
}

// At returns the cell at (row, col)
// Out-of-range lookups are invariant violations
func (s *Snapshot) At(row, col int) Cell {
	if !s.InBounds(row, col) {
		Violation("snapshot.At", "(%d,%d) outside %dx%d", row, col, s.width, s.height)
	}
	return s.cells[row*s.width+col]
}

// Index returns the cell at a row-major index
func (s *Snapshot) Index(i int) Cell {
	return s.cells[i]
}

// Range calls fn for every cell in row-major order until fn returns false
func (s *Snapshot) Range(fn func(row, col int, c Cell) bool) {
	for i, c := range s.cells {
		if !fn(i/s.width, i%s.width, c) {
			return
		}
	}
}

// String renders glyphs line by line, for tests and debugging
func (s *Snapshot) String() string {
	buf := make([]rune, 0, len(s.cells)+s.height)
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			r := s.cells[row*s.width+col].Rune
			if r == 0 {
				r = ' '
			}
			buf = append(buf, r)
		}
		if row < s.height-1 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}
