package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gunmetal = RGB{26, 27, 38}
	silver   = RGB{192, 192, 192}
)

func TestRGB_CSS(t *testing.T) {
	assert.Equal(t, "rgb(255, 0, 0)", RGB{255, 0, 0}.CSS())
	assert.Equal(t, "rgb(26, 27, 38)", gunmetal.CSS())
	assert.Equal(t, "#1a1b26", gunmetal.Hex())
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#ffffff", White, false},
		{"#000", Black, false},
		{"#1a1b26", gunmetal, false},
		{"#f00", RGB{255, 0, 0}, false},
		{"white", RGB{}, true},
		{"#zzzzzz", RGB{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRGB_Blend(t *testing.T) {
	assert.Equal(t, White, White.Blend(Black, 0))
	assert.Equal(t, Black, White.Blend(Black, 1))

	mid := White.Blend(Black, 0.5)
	assert.InDelta(t, 128, int(mid.R), 1)
	assert.Equal(t, mid.R, mid.G)
	assert.Equal(t, mid.G, mid.B)
}

func TestRGBFromTcell(t *testing.T) {
	_, ok := RGBFromTcell(tcell.ColorDefault)
	assert.False(t, ok)

	got, ok := RGBFromTcell(tcell.NewRGBColor(1, 2, 3))
	require.True(t, ok)
	assert.Equal(t, RGB{1, 2, 3}, got)

	got, ok = RGBFromTcell(tcell.ColorBlack)
	require.True(t, ok)
	assert.Equal(t, Black, got)
}

func TestTheme_CellColors(t *testing.T) {
	theme := Theme{Foreground: silver, Background: gunmetal}
	red := tcell.NewRGBColor(255, 0, 0)
	blue := tcell.NewRGBColor(0, 0, 255)

	tests := []struct {
		name      string
		cell      Cell
		wantFg    RGB
		wantBg    RGB
		wantBgSet bool
	}{
		{"defaults", Cell{Rune: 'a'}, silver, gunmetal, false},
		{"explicit", Cell{Rune: 'a', Fg: red, Bg: blue}, RGB{255, 0, 0}, RGB{0, 0, 255}, true},
		{"fg only", Cell{Rune: 'a', Fg: red}, RGB{255, 0, 0}, gunmetal, false},
		{"reverse explicit", Cell{Rune: 'a', Fg: red, Bg: blue, Attrs: AttrReverse}, RGB{0, 0, 255}, RGB{255, 0, 0}, true},
		{"reverse defaults", Cell{Rune: 'a', Attrs: AttrReverse}, gunmetal, silver, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg, bg, bgSet := theme.CellColors(tt.cell)
			assert.Equal(t, tt.wantFg, fg)
			assert.Equal(t, tt.wantBg, bg)
			assert.Equal(t, tt.wantBgSet, bgSet)
		})
	}
}

func TestAttrTcellRoundTrip(t *testing.T) {
	all := AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse | AttrStrikethrough
	assert.Equal(t, all, AttrFromTcell(TcellAttr(all)))
	assert.Equal(t, AttrBold, AttrFromTcell(TcellAttr(AttrBold|AttrHidden)))
}

func TestCell(t *testing.T) {
	assert.Equal(t, " ", Cell{}.Glyph())
	assert.Equal(t, "x", Cell{Rune: 'x'}.Glyph())

	assert.True(t, Cell{}.Blank())
	assert.True(t, Cell{Rune: ' '}.Blank())
	assert.True(t, Cell{Rune: 'x', Attrs: AttrHidden}.Blank())
	assert.False(t, Cell{Rune: 'x'}.Blank())

	assert.Equal(t, 1, Cell{Rune: 'x'}.Width())
	assert.Equal(t, 2, Cell{Rune: '世'}.Width())

	assert.True(t, Cell{Rune: '⣿'}.IsBraille())
	assert.False(t, Cell{Rune: 'x'}.IsBraille())
}
