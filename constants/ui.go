package constants

// Cell metrics
const (
	// DefaultCellWidth is used when the font cannot be measured
	DefaultCellWidth = 10

	// DefaultCellHeight is used when the font cannot be measured
	DefaultCellHeight = 19

	// DefaultFontFamily is the CSS font family for every backend
	DefaultFontFamily = "monospace"

	// DefaultFontSize is the font size in CSS pixels
	DefaultFontSize = 16

	// LineHeightRatio converts font size to row height when measuring by font
	LineHeightRatio = 1.2

	// MeasureGlyph is the sample text used to measure one cell
	MeasureGlyph = "M"
)

// Grid sizing
const (
	// FallbackGridWidth is used when neither options nor the container give a size
	FallbackGridWidth = 80

	// FallbackGridHeight is used when neither options nor the container give a size
	FallbackGridHeight = 24

	// MinGridWidth and MinGridHeight clamp fitted grids
	MinGridWidth  = 1
	MinGridHeight = 1
)

// Decoration geometry, as fractions of the cell height
const (
	UnderlineOffset     = 0.9
	StrikethroughOffset = 0.5
	DecorationThickness = 1.0 / 19
)

// DimBlend is how far dim text moves from foreground toward background
const DimBlend = 0.5
