package render

import (
	"github.com/lixenwraith/webterm/constants"
	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/host"
)

// measureSpan sizes one cell by laying out a hidden sample span in parent
func measureSpan(doc host.Document, parent host.Element, opts Options) (float64, float64) {
	sample := doc.CreateElement("span")
	sample.SetAttribute("style", "position: absolute; visibility: hidden; white-space: pre; font: "+opts.Font(0)+";")
	sample.SetText(constants.MeasureGlyph)
	parent.AppendChild(sample)
	b := sample.Bounds()
	sample.Remove()
	return fallbackCell(b.Width, b.Height)
}

// measureContext sizes one cell from the 2D context's text metrics
func measureContext(ctx host.Context2D, opts Options) (float64, float64) {
	ctx.SetFont(opts.Font(0))
	w := ctx.MeasureText(constants.MeasureGlyph)
	return fallbackCell(w, opts.FontSize*constants.LineHeightRatio)
}

func fallbackCell(w, h float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		core.Debugf("cell measurement %gx%g unusable, using %dx%d", w, h, constants.DefaultCellWidth, constants.DefaultCellHeight)
		return constants.DefaultCellWidth, constants.DefaultCellHeight
	}
	return w, h
}
