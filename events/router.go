package events

// handlerList is the ordered callback list of one event category
//
// Architecture:
//   - Single-threaded dispatch on the browser event loop
//   - Handlers are invoked in registration order
//   - Handlers registered during a dispatch run from the next event on
type handlerList[E any] struct {
	handlers []func(E)
}

func (l *handlerList[E]) add(fn func(E)) {
	if fn == nil {
		return
	}
	l.handlers = append(l.handlers, fn)
}

func (l *handlerList[E]) clear() {
	l.handlers = nil
}

// dispatch delivers ev to every handler and returns how many ran
func (l *handlerList[E]) dispatch(ev E) int {
	handlers := l.handlers
	for _, h := range handlers {
		h(ev)
	}
	return len(handlers)
}

func (l *handlerList[E]) count() int {
	return len(l.handlers)
}
