package constants

// Glyph atlas
const (
	// AtlasColumns is the number of glyph slots per atlas row
	AtlasColumns = 32

	// AtlasInitialRows is the row count allocated before any glyph is cached
	AtlasInitialRows = 4

	// AtlasMaxGlyphs bounds the atlas; further glyphs reuse the fallback slot
	AtlasMaxGlyphs = AtlasColumns * 64

	// AtlasFallbackSlot holds '?' for glyphs that do not fit
	AtlasFallbackSlot = 1
)

// Instance layout: one record per cell, all float32
//
//	[0]   glyph slot
//	[1:4] foreground rgb
//	[4:7] background rgb
//	[7]   flags (underline, strikethrough, hidden)
const (
	InstanceFloats = 8
	InstanceStride = InstanceFloats * 4

	InstanceGlyphOffset = 0
	InstanceFgOffset    = 1 * 4
	InstanceBgOffset    = 4 * 4
	InstanceFlagsOffset = 7 * 4

	// QuadVertices is the vertex count of the per-cell quad (two triangles)
	QuadVertices = 6
)

// Instance flag bits
const (
	InstanceFlagUnderline     = 1
	InstanceFlagStrikethrough = 2
	InstanceFlagHidden        = 4
)
