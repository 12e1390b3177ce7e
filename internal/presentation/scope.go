package presentation

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Scope ties tasks to the lifetime of a screen.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	group  errgroup.Group
}

func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Launch runs fn on its own goroutine with the scope's context. It does
// nothing once the scope is closed.
func (s *Scope) Launch(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.group.Go(func() error {
		fn(s.ctx)
		return nil
	})
}

// Close cancels every task and waits for them to return.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	_ = s.group.Wait()
}

// Slot runs at most one task of a kind; switching cancels the previous one.
type Slot struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Switch cancels the task currently in slot and launches fn in its place.
func (s *Scope) Switch(slot *Slot, fn func(ctx context.Context)) {
	slot.mu.Lock()
	if slot.cancel != nil {
		slot.cancel()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	slot.cancel = cancel
	slot.mu.Unlock()

	s.Launch(func(context.Context) {
		defer cancel()
		fn(ctx)
	})
}

// Bind returns a context that is done when either ctx is done or the scope
// closes.
func (s *Scope) Bind(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	context.AfterFunc(s.ctx, cancel)
	return ctx
}
