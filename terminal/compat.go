package terminal

import "github.com/gdamore/tcell/v2"

// AttrFromTcell converts a tcell.AttrMask to terminal.Attr
func AttrFromTcell(mask tcell.AttrMask) Attr {
	var a Attr
	if mask&tcell.AttrBold != 0 {
		a |= AttrBold
	}
	if mask&tcell.AttrDim != 0 {
		a |= AttrDim
	}
	if mask&tcell.AttrItalic != 0 {
		a |= AttrItalic
	}
	if mask&tcell.AttrUnderline != 0 {
		a |= AttrUnderline
	}
	if mask&tcell.AttrBlink != 0 {
		a |= AttrBlink
	}
	if mask&tcell.AttrReverse != 0 {
		a |= AttrReverse
	}
	if mask&tcell.AttrStrikeThrough != 0 {
		a |= AttrStrikethrough
	}
	return a
}

// TcellAttr converts terminal.Attr to a tcell.AttrMask
// AttrHidden has no tcell equivalent and is dropped
func TcellAttr(a Attr) tcell.AttrMask {
	mask := tcell.AttrNone
	if a&AttrBold != 0 {
		mask |= tcell.AttrBold
	}
	if a&AttrDim != 0 {
		mask |= tcell.AttrDim
	}
	if a&AttrItalic != 0 {
		mask |= tcell.AttrItalic
	}
	if a&AttrUnderline != 0 {
		mask |= tcell.AttrUnderline
	}
	if a&AttrBlink != 0 {
		mask |= tcell.AttrBlink
	}
	if a&AttrReverse != 0 {
		mask |= tcell.AttrReverse
	}
	if a&AttrStrikethrough != 0 {
		mask |= tcell.AttrStrikeThrough
	}
	return mask
}

// CellFromStyle builds a cell from a rune and a tcell style
func CellFromStyle(r rune, style tcell.Style) Cell {
	fg, bg, attrs := style.Decompose()
	return Cell{Rune: r, Fg: fg, Bg: bg, Attrs: AttrFromTcell(attrs)}
}

// Style returns the tcell style equivalent of the cell, carrying Link as the style URL
// tcell exposes no getter for the URL, so CellFromStyle cannot recover it
func (c Cell) Style() tcell.Style {
	return tcell.StyleDefault.
		Foreground(c.Fg).
		Background(c.Bg).
		Attributes(TcellAttr(c.Attrs)).
		Url(c.Link)
}
