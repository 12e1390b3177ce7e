package presentation

import (
	"context"
	"log"

	"github.com/mrlokans/bookshelf/internal/models"
)

// BookDeleted is emitted once the shown book has been removed.
type BookDeleted struct {
	ID uint
}

type BookDetailState struct {
	ID            uint
	Book          *models.Book
	Quotes        []models.Quote
	Loading       bool
	Err           error
	ActionErr     error
	Deleting      bool
	QuotesLoading bool
	QuotesErr     error
}

// BookDetailView is the loaded content of the detail screen.
type BookDetailView struct {
	Book     models.Book
	Quotes   []models.Quote
	Deleting bool
	// Err is the last failed write on this screen.
	Err error
	// QuotesErr is set while the live quote list cannot be read; Quotes then
	// holds the last list read, or the quotes loaded with the book.
	QuotesErr error
}

// BookDetail shows one book and its quotes.
type BookDetail struct {
	scope   *Scope
	store   *Store[BookDetailState]
	events  *Events[BookDeleted]
	deleter BookDeleter
}

func NewBookDetail(ctx context.Context, id uint, book BookGetter, quotes BookQuotesGetter, deleter BookDeleter) *BookDetail {
	d := &BookDetail{
		scope:   NewScope(ctx),
		store:   NewStore(BookDetailState{ID: id, Loading: true, QuotesLoading: true}),
		events:  NewEvents[BookDeleted](0),
		deleter: deleter,
	}

	d.scope.Launch(func(ctx context.Context) {
		for u := range book.Execute(ctx, id) {
			if u.Err != nil {
				log.Printf("Failed to load book %d: %v", id, u.Err)
			}
			d.store.Update(func(s BookDetailState) BookDetailState {
				s.Loading = false
				s.Err = u.Err
				if u.Err == nil {
					b := u.Value
					s.Book = &b
				}
				return s
			})
		}
	})

	d.scope.Launch(func(ctx context.Context) {
		for u := range quotes.Execute(ctx, id) {
			if u.Err != nil {
				log.Printf("Failed to load quotes of book %d: %v", id, u.Err)
			}
			d.store.Update(func(s BookDetailState) BookDetailState {
				s.QuotesLoading = false
				s.QuotesErr = u.Err
				if u.Err == nil {
					s.Quotes = u.Value
				}
				return s
			})
		}
	})

	return d
}

// Delete removes the book. BookDeleted is emitted on success.
func (d *BookDetail) Delete() {
	id := d.store.Update(func(s BookDetailState) BookDetailState {
		s.Deleting = true
		s.ActionErr = nil
		return s
	}).ID

	d.scope.Launch(func(ctx context.Context) {
		err := d.deleter.Execute(ctx, id)
		if err != nil {
			log.Printf("Failed to delete book %d: %v", id, err)
		}
		d.store.Update(func(s BookDetailState) BookDetailState {
			s.Deleting = false
			s.ActionErr = err
			return s
		})
		if err == nil {
			d.events.Emit(ctx, BookDeleted{ID: id})
		}
	})
}

func (d *BookDetail) Events() <-chan BookDeleted {
	return d.events.C()
}

func (d *BookDetail) Snapshot() BookDetailState {
	return d.store.Snapshot()
}

func (d *BookDetail) State(ctx context.Context) <-chan ItemState[BookDetailView] {
	ctx = d.scope.Bind(ctx)
	return Project(ctx, d.store.Subscribe(ctx), projectBookDetail)
}

func projectBookDetail(s BookDetailState) ItemState[BookDetailView] {
	switch {
	case s.Err != nil:
		return ItemFailed[BookDetailView]{Err: s.Err}
	case s.Loading || s.Book == nil:
		return ItemLoading[BookDetailView]{}
	}
	quotes := s.Quotes
	if quotes == nil {
		quotes = s.Book.Quotes
	}
	return ItemLoaded[BookDetailView]{Item: BookDetailView{
		Book:      *s.Book,
		Quotes:    quotes,
		Deleting:  s.Deleting,
		Err:       s.ActionErr,
		QuotesErr: s.QuotesErr,
	}}
}

func (d *BookDetail) Close() {
	d.scope.Close()
}
