package render

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/webterm/constants"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/terminal"
)

// Options configures every backend variant
type Options struct {
	// Container is the id of the element hosting the grid; empty or unknown uses <body>
	Container string

	FontFamily string
	FontSize   float64

	Theme terminal.Theme
}

// DefaultOptions returns monospace 16px, white on black, mounted in <body>
func DefaultOptions() Options {
	return Options{
		FontFamily: constants.DefaultFontFamily,
		FontSize:   constants.DefaultFontSize,
		Theme:      terminal.DefaultTheme,
	}
}

func (o Options) withDefaults() Options {
	if o.FontFamily == "" {
		o.FontFamily = constants.DefaultFontFamily
	}
	if o.FontSize <= 0 {
		o.FontSize = constants.DefaultFontSize
	}
	return o
}

// Font returns the CSS font shorthand for the face selected by attrs
func (o Options) Font(attrs terminal.Attr) string {
	var b strings.Builder
	if attrs.Has(terminal.AttrItalic) {
		b.WriteString("italic ")
	}
	if attrs.Has(terminal.AttrBold) {
		b.WriteString("bold ")
	}
	b.WriteString(strconv.FormatFloat(o.FontSize, 'f', -1, 64))
	b.WriteString("px ")
	b.WriteString(o.FontFamily)
	return b.String()
}

// Targeter is implemented by backends that expose the element receiving pointer input
type Targeter interface {
	Target() host.Element
}

// Retainer is implemented by backends that hold one resource per cell
// The driver checks the count against the grid after every Initialize
type Retainer interface {
	Retained() int
}

// LinkRenderer is implemented by backends whose surface follows hyperlinks itself
type LinkRenderer interface {
	RendersLinks() bool
}

// container resolves the mount point or reports the surface unavailable
func container(doc host.Document, id string) (host.Element, error) {
	if doc == nil {
		return nil, surfaceErr("document", "no document")
	}
	el := host.ContainerOrBody(doc, id)
	if el == nil {
		return nil, surfaceErr("container", "no element %q and no body", id)
	}
	return el, nil
}
