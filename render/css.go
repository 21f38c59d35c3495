package render

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/webterm/terminal"
)

// CellCSS returns the inline style of a DOM cell
func CellCSS(theme terminal.Theme, c terminal.Cell, cursor bool) string {
	return resolve(theme, c, cursor).css()
}

func (p paint) css() string {
	var b strings.Builder
	b.Grow(160)

	if p.visible() {
		b.WriteString("color: ")
		b.WriteString(p.fg.CSS())
		b.WriteString("; ")
	} else {
		b.WriteString("color: transparent; ")
	}

	b.WriteString("background-color: ")
	if p.bgSet {
		b.WriteString(p.bg.CSS())
	} else {
		b.WriteString("transparent")
	}
	b.WriteString("; ")

	if p.attrs.Has(terminal.AttrBold) {
		b.WriteString("font-weight: bold; ")
	}
	if p.attrs.Has(terminal.AttrDim) {
		b.WriteString("opacity: 0.5; ")
	}
	if p.attrs.Has(terminal.AttrItalic) {
		b.WriteString("font-style: italic; ")
	}

	under := p.attrs.Has(terminal.AttrUnderline)
	strike := p.attrs.Has(terminal.AttrStrikethrough)
	switch {
	case under && strike:
		b.WriteString("text-decoration: underline line-through; ")
	case under:
		b.WriteString("text-decoration: underline; ")
	case strike:
		b.WriteString("text-decoration: line-through; ")
	}

	if p.cell.IsBraille() {
		b.WriteString("font-variant-numeric: tabular-nums; ")
	}

	b.WriteString("display: inline-block; width: ")
	b.WriteString(strconv.Itoa(p.cell.Width()))
	b.WriteString("ch;")
	return b.String()
}

// continuationCSS collapses the trailing half of a wide glyph
const continuationCSS = "display: none;"

// anchorCSS lets a link take the look of its cell
const anchorCSS = "color: inherit; text-decoration: inherit;"
