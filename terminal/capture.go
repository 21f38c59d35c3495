package terminal

import "github.com/gdamore/tcell/v2"

// ContentReader is the read side of a tcell.Screen
// tcell screens (including the simulation screen) and Frame satisfy it
type ContentReader interface {
	Size() (width, height int)
	GetContent(x, y int) (primary rune, combining []rune, style tcell.Style, width int)
}

// Capture snapshots the current contents of a tcell-compatible screen
// Lets an application that already draws into a tcell.Screen feed the browser renderers
func Capture(src ContentReader) *Snapshot {
	width, height := src.Size()
	f := NewFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			primary, _, style, _ := src.GetContent(x, y)
			f.cells[y*width+x] = CellFromStyle(primary, style)
		}
	}
	return f.Snapshot()
}

// CaptureInto copies src into the frame, clipped to both sizes
func CaptureInto(f *Frame, src ContentReader) {
	width, height := src.Size()
	width, height = min(width, f.width), min(height, f.height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			primary, _, style, _ := src.GetContent(x, y)
			f.SetContent(x, y, primary, nil, style)
		}
	}
}
