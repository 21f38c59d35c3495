package terminal

// Theme fallback colors
// Palette-indexed cell colors resolve through tcell's own xterm table
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)
