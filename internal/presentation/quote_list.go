package presentation

import (
	"context"
	"log"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

type QuoteListState struct {
	// BookID limits the list to one book when non-zero.
	BookID    uint
	Quotes    []models.Quote
	Loading   bool
	Err       error
	ActionErr error
}

// QuoteList shows every quote, newest first, or the quotes of one book in
// page order.
type QuoteList struct {
	scope   *Scope
	store   *Store[QuoteListState]
	deleter QuoteDeleter
}

func NewQuoteList(ctx context.Context, all QuotesGetter, byBook BookQuotesGetter, deleter QuoteDeleter, bookID uint) *QuoteList {
	l := &QuoteList{
		scope:   NewScope(ctx),
		store:   NewStore(QuoteListState{BookID: bookID, Loading: true}),
		deleter: deleter,
	}

	l.scope.Launch(func(ctx context.Context) {
		var stream <-chan observe.Update[[]models.Quote]
		if bookID != 0 {
			stream = byBook.Execute(ctx, bookID)
		} else {
			stream = all.Execute(ctx)
		}
		for u := range stream {
			if u.Err != nil {
				log.Printf("Failed to load quotes: %v", u.Err)
			}
			l.store.Update(func(s QuoteListState) QuoteListState {
				s.Loading = false
				s.Err = u.Err
				if u.Err == nil {
					s.Quotes = u.Value
				}
				return s
			})
		}
	})

	return l
}

// Delete removes a quote; the list drops it on the next emission.
func (l *QuoteList) Delete(id uint) {
	l.scope.Launch(func(ctx context.Context) {
		err := l.deleter.Execute(ctx, id)
		if err != nil {
			log.Printf("Failed to delete quote %d: %v", id, err)
		}
		l.store.Update(func(s QuoteListState) QuoteListState {
			s.ActionErr = err
			return s
		})
	})
}

func (l *QuoteList) Snapshot() QuoteListState {
	return l.store.Snapshot()
}

func (l *QuoteList) State(ctx context.Context) <-chan ListView[models.Quote] {
	ctx = l.scope.Bind(ctx)
	return Project(ctx, l.store.Subscribe(ctx), func(s QuoteListState) ListView[models.Quote] {
		return ListView[models.Quote]{List: ToListState(s.Loading, s.Quotes, s.Err), Err: s.ActionErr}
	})
}

func (l *QuoteList) Close() {
	l.scope.Close()
}
