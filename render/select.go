package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/terminal"
)

// Kind names a backend variant
type Kind uint8

const (
	KindDOM Kind = iota
	KindCanvas
	KindWebGL2
)

// kindNames is indexed by Kind
var kindNames = [...]string{
	KindDOM:    "dom",
	KindCanvas: "canvas",
	KindWebGL2: "webgl2",
}

// ErrUnknownKind reports an unrecognized backend name
var ErrUnknownKind = errors.New("unknown backend kind")

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind resolves a backend name; "webgl" is accepted for webgl2
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "webgl" {
		return KindWebGL2, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New constructs one backend variant
func New(kind Kind, doc host.Document, opts Options) (terminal.Backend, error) {
	var (
		b   terminal.Backend
		err error
	)
	switch kind {
	case KindDOM:
		b, err = NewDOM(doc, opts)
	case KindCanvas:
		b, err = NewCanvas(doc, opts)
	case KindWebGL2:
		b, err = NewWebGL(doc, opts)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewWithFallback tries each kind in order and returns the first that the host supports
// Only surface failures move on to the next kind; every failure is logged and
// all of them are joined when no kind succeeds
func NewWithFallback(doc host.Document, opts Options, kinds ...Kind) (terminal.Backend, Kind, error) {
	if len(kinds) == 0 {
		kinds = []Kind{KindDOM}
	}
	var errs []error
	for _, kind := range kinds {
		b, err := New(kind, doc, opts)
		if err == nil {
			if len(errs) > 0 {
				core.Logf("render: using %s backend after %d fallback(s)", kind, len(errs))
			}
			return b, kind, nil
		}
		if !errors.Is(err, terminal.ErrSurfaceUnavailable) {
			return nil, kind, fmt.Errorf("%s backend: %w", kind, err)
		}
		core.Logf("render: %s backend unavailable: %v", kind, err)
		errs = append(errs, fmt.Errorf("%s: %w", kind, err))
	}
	return nil, kinds[len(kinds)-1], errors.Join(errs...)
}
