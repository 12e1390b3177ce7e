package presentation

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store owns a screen's snapshot.
type Store[S any] struct {
	mu    sync.Mutex
	state S
	subs  map[uuid.UUID]chan S
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{state: initial, subs: make(map[uuid.UUID]chan S)}
}

// Snapshot returns the current state.
func (s *Store[S]) Snapshot() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update replaces the snapshot with fn applied to it and returns the result.
// Concurrent updates are applied one at a time, each seeing the previous
// result.
func (s *Store[S]) Update(fn func(S) S) S {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = fn(s.state)
	for _, ch := range s.subs {
		offer(ch, s.state)
	}
	return s.state
}

// Subscribe returns a channel that holds the latest snapshot. A slow reader
// skips intermediate snapshots but always ends up with the newest one. The
// channel is closed once ctx is done.
func (s *Store[S]) Subscribe(ctx context.Context) <-chan S {
	id := uuid.New()
	ch := make(chan S, 1)

	s.mu.Lock()
	ch <- s.state
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// offer replaces any unread value in ch with v. Callers hold the store lock,
// so no other sender competes for the slot.
func offer[S any](ch chan S, v S) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}

// Project maps every value of in through fn. The result closes when in does.
func Project[S, V any](ctx context.Context, in <-chan S, fn func(S) V) <-chan V {
	out := make(chan V)
	go func() {
		defer close(out)
		for s := range in {
			select {
			case out <- fn(s):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
