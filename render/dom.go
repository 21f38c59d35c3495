package render

import (
	"strconv"

	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/terminal"
)

// DOM renders one <span> per cell inside a <pre>, one <div> per row
// Each span remembers its last applied text and style so unchanged attributes are never rewritten
// Linked cells hold their text in an <a> inside the span, so the browser follows links itself
type DOM struct {
	doc    host.Document
	parent host.Element
	opts   Options

	root    host.Element
	rows    []host.Element
	spans   []host.Element
	anchors []host.Element
	text    []string
	style   []string
	link    []string

	width, height int
	cellW, cellH  float64
	cursor        terminal.Cursor
}

// NewDOM mounts a DOM renderer in the configured container
func NewDOM(doc host.Document, opts Options) (*DOM, error) {
	opts = opts.withDefaults()
	parent, err := container(doc, opts.Container)
	if err != nil {
		return nil, err
	}
	d := &DOM{doc: doc, parent: parent, opts: opts}
	d.cellW, d.cellH = measureSpan(doc, parent, opts)
	return d, nil
}

// Initialize builds the span grid, replacing any previous one
func (d *DOM) Initialize(width, height int) error {
	d.Release()

	root := d.doc.CreateElement("pre")
	root.SetAttribute("style", "margin: 0; line-height: "+strconv.FormatFloat(d.cellH, 'f', -1, 64)+"px; font: "+d.opts.Font(0)+"; background-color: "+d.opts.Theme.Background.CSS()+";")

	n := width * height
	d.rows = make([]host.Element, height)
	d.spans = make([]host.Element, n)
	d.anchors = make([]host.Element, n)
	d.text = make([]string, n)
	d.style = make([]string, n)
	d.link = make([]string, n)

	for y := 0; y < height; y++ {
		row := d.doc.CreateElement("div")
		for x := 0; x < width; x++ {
			span := d.doc.CreateElement("span")
			row.AppendChild(span)
			d.spans[y*width+x] = span
		}
		root.AppendChild(row)
		d.rows[y] = row
	}

	d.parent.AppendChild(root)
	d.root = root
	d.width, d.height = width, height
	d.cursor = terminal.Cursor{}
	core.Debugf("dom: initialized %dx%d (%d spans)", width, height, n)
	return nil
}

// Render writes changed cells into their spans
func (d *DOM) Render(diff terminal.Diff, snap *terminal.Snapshot) {
	checkFrame("dom.Render", d.width, d.height, diff, snap)

	cur := snap.Cursor()
	if diff.IsFull() {
		for row := 0; row < d.height; row++ {
			for col := 0; col < d.width; col++ {
				d.paintCell(snap, row, col, cur)
			}
		}
		d.cursor = cur
		return
	}

	for _, p := range diff.Positions() {
		d.paintCell(snap, p.Row, p.Col, cur)
		// Width change of a wide glyph also changes its trailing cell
		if p.Col+1 < d.width {
			d.paintCell(snap, p.Row, p.Col+1, cur)
		}
	}
	for _, p := range cursorRepaint(d.cursor, cur) {
		d.paintCell(snap, p.Row, p.Col, cur)
	}
	d.cursor = cur
}

func (d *DOM) paintCell(snap *terminal.Snapshot, row, col int, cur terminal.Cursor) {
	idx := row*d.width + col
	span := d.spans[idx]

	var text, style, link string
	if continuation(snap, row, col) {
		text, style = "", continuationCSS
	} else {
		p := resolve(d.opts.Theme, snap.At(row, col), cursorAt(cur, row, col))
		text, style, link = p.cell.Glyph(), p.css(), p.cell.Link
	}

	if d.link[idx] != link {
		d.setLink(idx, link)
	}
	if d.text[idx] != text {
		holder := span
		if a := d.anchors[idx]; a != nil {
			holder = a
		}
		holder.SetText(text)
		d.text[idx] = text
	}
	if d.style[idx] != style {
		span.SetAttribute("style", style)
		d.style[idx] = style
	}
}

// setLink moves the cell text into or out of an anchor; the text is rewritten afterwards
func (d *DOM) setLink(idx int, link string) {
	d.link[idx] = link
	if a := d.anchors[idx]; a != nil {
		if link != "" {
			a.SetAttribute("href", link)
			return
		}
		a.Remove()
		d.anchors[idx] = nil
		d.text[idx] = ""
		return
	}

	a := d.doc.CreateElement("a")
	a.SetAttribute("href", link)
	a.SetAttribute("target", "_blank")
	a.SetAttribute("rel", "noopener noreferrer")
	a.SetAttribute("style", anchorCSS)
	d.spans[idx].SetText("")
	d.spans[idx].AppendChild(a)
	d.anchors[idx] = a
	d.text[idx] = ""
}

// RendersLinks reports that linked cells are real anchors
func (d *DOM) RendersLinks() bool {
	return true
}

// CellSize returns the measured span size
func (d *DOM) CellSize() (float64, float64) {
	return d.cellW, d.cellH
}

// Target returns the container; the grid root is rebuilt on every Initialize
func (d *DOM) Target() host.Element {
	return d.parent
}

// Retained returns the number of cell spans alive
func (d *DOM) Retained() int {
	return len(d.spans)
}

// Release detaches the grid
func (d *DOM) Release() {
	if d.root != nil {
		d.root.Remove()
		d.root = nil
	}
	d.rows, d.spans, d.anchors = nil, nil, nil
	d.text, d.style, d.link = nil, nil, nil
	d.width, d.height = 0, 0
}
