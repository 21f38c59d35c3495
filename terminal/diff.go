package terminal

// Diff describes the cells a backend must repaint for one frame
// Full repaints everything; otherwise Positions lists changed cells in row-major order
type Diff struct {
	full      bool
	positions []Position
}

// FullDiff returns a diff that repaints the whole grid
func FullDiff() Diff {
	return Diff{full: true}
}

// PartialDiff returns a diff over the given positions
func PartialDiff(positions ...Position) Diff {
	return Diff{positions: positions}
}

// IsFull reports whether the whole grid must be repainted
func (d Diff) IsFull() bool {
	return d.full
}

// Positions returns the changed cells of a partial diff, nil for a full diff
func (d Diff) Positions() []Position {
	return d.positions
}

// Len returns the number of changed positions, -1 for a full diff
func (d Diff) Len() int {
	if d.full {
		return -1
	}
	return len(d.positions)
}

// Empty reports whether a partial diff has nothing to repaint
func (d Diff) Empty() bool {
	return !d.full && len(d.positions) == 0
}

// Bounds returns the smallest rectangle covering every changed cell of a partial diff
// ok is false for full and empty diffs
func (d Diff) Bounds() (r Rect, ok bool) {
	if d.full || len(d.positions) == 0 {
		return Rect{}, false
	}
	for _, p := range d.positions {
		r = r.Union(p)
	}
	return r, true
}

// Validate checks every position against the snapshot dimensions
func (d Diff) Validate(s *Snapshot) error {
	for _, p := range d.positions {
		if !s.InBounds(p.Row, p.Col) {
			return &InvariantError{Op: "diff", Detail: "position out of range"}
		}
	}
	return nil
}

// ComputeDiff compares the previous frame with the current one
// A nil previous snapshot or any dimension change yields a full diff
// Otherwise every structurally different cell is reported once, in row-major order
func ComputeDiff(prev, curr *Snapshot) Diff {
	if prev == nil || prev.width != curr.width || prev.height != curr.height {
		return FullDiff()
	}

	var positions []Position
	width := curr.width
	for y := 0; y < curr.height; y++ {
		rowStart := y * width
		for x := 0; x < width; x++ {
			idx := rowStart + x
			if curr.cells[idx] == prev.cells[idx] {
				continue
			}
			positions = append(positions, Position{Row: y, Col: x})
		}
	}
	return Diff{positions: positions}
}
