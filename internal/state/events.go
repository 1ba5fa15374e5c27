package state

// Events is a one-shot notification stream. Each emitted value is delivered
// to a single reader at most once and is never replayed, unlike a Container.
type Events[T any] struct {
	ch chan T
}

// NewEvents creates a stream that buffers up to size undelivered events.
func NewEvents[T any](size int) *Events[T] {
	if size <= 0 {
		size = 1
	}
	return &Events[T]{ch: make(chan T, size)}
}

// Emit queues an event without blocking. It reports false when the buffer is
// full and the event was dropped.
func (e *Events[T]) Emit(v T) bool {
	select {
	case e.ch <- v:
		return true
	default:
		return false
	}
}

// C returns the receive side of the stream.
func (e *Events[T]) C() <-chan T {
	return e.ch
}
