package presentation

import "context"

// DefaultEventBuffer is the number of events a screen queues before Emit blocks.
const DefaultEventBuffer = 8

// Events is a queue of one-shot outcomes. Each event is received by exactly
// one reader and is never replayed to later readers.
type Events[E any] struct {
	ch chan E
}

func NewEvents[E any](size int) *Events[E] {
	if size <= 0 {
		size = DefaultEventBuffer
	}
	return &Events[E]{ch: make(chan E, size)}
}

// Emit queues ev, waiting for room until ctx is done. It reports whether the
// event was queued.
func (e *Events[E]) Emit(ctx context.Context, ev E) bool {
	select {
	case e.ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// C returns the receive side of the queue.
func (e *Events[E]) C() <-chan E {
	return e.ch
}
