package engine

// Event is a multi-cast event with one argument. Function values cannot be
// compared in Go, so AddListener hands back a removal func instead; callers
// keep it and invoke it when their lifetime ends.
type Event[T any] struct {
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// AddListener registers a callback and returns a func that unregisters it.
func (e *Event[T]) AddListener(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, fn: fn})
	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// RemoveAllListeners clears all listeners
func (e *Event[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners
func (e *Event[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

// ListenerCount returns the number of registered listeners (for debugging)
func (e *Event[T]) ListenerCount() int {
	return len(e.listeners)
}
