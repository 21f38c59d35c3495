package engine

import "github.com/lixenwraith/webterm/terminal"

// Stateful threads one application state value through the draw callback and
// the input handlers. All callbacks run on the browser event loop, so they
// share *S without locking
type Stateful[S any] struct {
	term  *Terminal
	state *S
}

// WithState binds state to t
func WithState[S any](t *Terminal, state *S) *Stateful[S] {
	if state == nil {
		state = new(S)
	}
	return &Stateful[S]{term: t, state: state}
}

// DrawWeb starts the render loop with draw receiving the state
func (s *Stateful[S]) DrawWeb(draw func(state *S, f *terminal.Frame)) error {
	return s.term.DrawWeb(func(f *terminal.Frame) {
		draw(s.state, f)
	})
}

// OnKeyEvent appends a key handler receiving the state
func (s *Stateful[S]) OnKeyEvent(fn func(state *S, ev terminal.KeyEvent)) {
	s.term.OnKeyEvent(func(ev terminal.KeyEvent) {
		fn(s.state, ev)
	})
}

// OnMouseEvent appends a mouse handler receiving the state
func (s *Stateful[S]) OnMouseEvent(fn func(state *S, ev terminal.MouseEvent)) {
	s.term.OnMouseEvent(func(ev terminal.MouseEvent) {
		fn(s.state, ev)
	})
}

// Terminal returns the wrapped terminal
func (s *Stateful[S]) Terminal() *Terminal {
	return s.term
}
