// Package observe turns one-shot storage queries into continuously updated
// streams.
//
// Repositories call Notifier.Notify with the tables a write touched. Every
// stream created with Query re-runs its query when one of the tables it reads
// is invalidated and emits the fresh result. Streams are scoped to a context:
// cancelling it unsubscribes and closes the channel.
//
//	updates := observe.Query(ctx, notifier, loadBooks, observe.TableBooks, observe.TableAuthors)
//	for u := range updates {
//	    if u.Err != nil { ... }
//	    render(u.Value)
//	}
package observe

import (
	"sync"

	"github.com/google/uuid"
)

// Table names a store table whose changes can be observed.
type Table string

const (
	TableAuthors Table = "authors"
	TableGenres  Table = "genres"
	TableBooks   Table = "books"
	TableQuotes  Table = "quotes"
)

type subscription struct {
	tables map[Table]struct{}
	// Capacity 1: pending invalidations coalesce into one re-query.
	signal chan struct{}
}

// Notifier fans out table invalidations to subscribers.
type Notifier struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*subscription
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[uuid.UUID]*subscription)}
}

// Subscribe registers interest in tables. The returned channel receives a
// value after any of them is invalidated; several invalidations between two
// receives collapse into one.
func (n *Notifier) Subscribe(tables ...Table) (uuid.UUID, <-chan struct{}) {
	sub := &subscription{
		tables: make(map[Table]struct{}, len(tables)),
		signal: make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	id := uuid.New()
	n.mu.Lock()
	n.subs[id] = sub
	n.mu.Unlock()
	return id, sub.signal
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (n *Notifier) Unsubscribe(id uuid.UUID) {
	n.mu.Lock()
	delete(n.subs, id)
	n.mu.Unlock()
}

// Notify invalidates tables. It never blocks.
func (n *Notifier) Notify(tables ...Table) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, sub := range n.subs {
		if !sub.watches(tables) {
			continue
		}
		select {
		case sub.signal <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

func (s *subscription) watches(tables []Table) bool {
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}
