package usecase

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/observe"
)

// requirePresent dereferences every value of in, replacing nil with the error
// built by notFound. The returned stream closes when in closes.
func requirePresent[T any](ctx context.Context, in <-chan observe.Update[*T], notFound func() error) <-chan observe.Update[T] {
	out := make(chan observe.Update[T])
	go func() {
		defer close(out)
		for u := range in {
			var next observe.Update[T]
			switch {
			case u.Err != nil:
				next.Err = u.Err
			case u.Value == nil:
				next.Err = notFound()
			default:
				next.Value = *u.Value
			}

			select {
			case out <- next:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
