// Package dispatch moves blocking storage calls off the caller's goroutine
// onto a bounded set of background workers.
package dispatch

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// DefaultWorkers is used when a dispatcher is created with a non-positive size.
const DefaultWorkers = 4

// Dispatcher is the background execution context for storage work.
type Dispatcher struct {
	sem *semaphore.Weighted
}

// New creates a dispatcher running at most workers calls at once.
func New(workers int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Dispatcher{sem: semaphore.NewWeighted(int64(workers))}
}

type result[T any] struct {
	value T
	err   error
}

// Do runs fn on a background worker and waits for it. If ctx is cancelled
// before fn returns, Do returns ctx.Err() and fn's result is discarded when it
// finishes. Use Exec for work whose outcome must not be lost.
func Do[T any](ctx context.Context, d *Dispatcher, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}

	done := make(chan result[T], 1)
	go func() {
		defer d.sem.Release(1)
		value, err := fn(ctx)
		done <- result[T]{value: value, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		select {
		case r := <-done:
			return r.value, r.err
		default:
		}
		return zero, ctx.Err()
	}
}

// Exec runs fn on a background worker and always waits for it to return.
// Only the wait for a free worker gives up on ctx; fn sees ctx and decides
// itself whether to stop, so its result is never dropped.
func Exec(ctx context.Context, d *Dispatcher, fn func(context.Context) error) error {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer d.sem.Release(1)
		done <- fn(ctx)
	}()
	return <-done
}

// Run is Do for calls without a result.
func Run(ctx context.Context, d *Dispatcher, fn func(context.Context) error) error {
	_, err := Do(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
