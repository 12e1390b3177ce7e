package observe

import (
	"context"
	"errors"
)

// Update is one emission of a stream: either a value or the error the query
// returned. A failed query does not end the stream; the next invalidation
// retries it.
type Update[T any] struct {
	Value T
	Err   error
}

// ErrClosed is returned by First when the stream closed without emitting.
var ErrClosed = errors.New("stream closed")

// Query runs query now and again after every invalidation of tables, sending
// each result on the returned channel in the order the queries ran. The
// channel is closed once ctx is done.
func Query[T any](ctx context.Context, n *Notifier, query func(context.Context) (T, error), tables ...Table) <-chan Update[T] {
	out := make(chan Update[T])

	// Subscribe before the first query so a write racing with it is not lost.
	id, signal := n.Subscribe(tables...)

	go func() {
		defer close(out)
		defer n.Unsubscribe(id)

		for {
			value, err := query(ctx)
			if ctx.Err() != nil {
				return
			}

			select {
			case out <- Update[T]{Value: value, Err: err}:
			case <-ctx.Done():
				return
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Just emits a single value and closes, for streams over data that never changes.
func Just[T any](ctx context.Context, value T) <-chan Update[T] {
	out := make(chan Update[T], 1)
	select {
	case <-ctx.Done():
	default:
		out <- Update[T]{Value: value}
	}
	close(out)
	return out
}

// First waits for the first emission of stream.
func First[T any](ctx context.Context, stream <-chan Update[T]) (T, error) {
	var zero T
	select {
	case u, ok := <-stream:
		if !ok {
			return zero, ErrClosed
		}
		return u.Value, u.Err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Get opens a stream on a child context, reads its first emission and closes it.
func Get[T any](ctx context.Context, open func(context.Context) <-chan Update[T]) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return First(ctx, open(ctx))
}
