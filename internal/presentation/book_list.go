package presentation

import (
	"context"
	"log"

	"github.com/mrlokans/bookshelf/internal/models"
)

type BookListState struct {
	Filter  models.BookFilter
	Books   []models.Book
	Loading bool
	Err     error
}

// BookList shows the books matching a sort order and an optional status.
type BookList struct {
	scope *Scope
	store *Store[BookListState]
	books FilteredBooksGetter
	slot  Slot
}

func NewBookList(ctx context.Context, books FilteredBooksGetter) *BookList {
	filter := models.BookFilter{Sort: models.DefaultBookSort}
	b := &BookList{
		scope: NewScope(ctx),
		store: NewStore(BookListState{Filter: filter, Loading: true}),
		books: books,
	}
	b.subscribe(filter)
	return b
}

func (b *BookList) subscribe(filter models.BookFilter) {
	b.scope.Switch(&b.slot, func(ctx context.Context) {
		for u := range b.books.Execute(ctx, filter) {
			if u.Err != nil {
				log.Printf("Failed to load books: %v", u.Err)
			}
			b.store.Update(func(s BookListState) BookListState {
				// A newer filter owns the list now.
				if !sameFilter(s.Filter, filter) {
					return s
				}
				s.Loading = false
				s.Err = u.Err
				if u.Err == nil {
					s.Books = u.Value
				}
				return s
			})
		}
	})
}

func (b *BookList) setFilter(change func(models.BookFilter) models.BookFilter) {
	var changed bool
	next := b.store.Update(func(s BookListState) BookListState {
		f := change(s.Filter)
		if sameFilter(f, s.Filter) {
			return s
		}
		changed = true
		s.Filter = f
		s.Loading = true
		s.Err = nil
		return s
	})
	if changed {
		b.subscribe(next.Filter)
	}
}

func (b *BookList) sortBy(key models.BookSortKey, ascending bool) {
	b.setFilter(func(f models.BookFilter) models.BookFilter {
		f.Sort = models.BookSort{Key: key, Ascending: ascending}
		return f
	})
}

func (b *BookList) SortByTitleAsc()     { b.sortBy(models.SortByTitle, true) }
func (b *BookList) SortByTitleDesc()    { b.sortBy(models.SortByTitle, false) }
func (b *BookList) SortByReadDateAsc()  { b.sortBy(models.SortByReadDate, true) }
func (b *BookList) SortByReadDateDesc() { b.sortBy(models.SortByReadDate, false) }

// FilterByStatus restricts the list to status; nil shows every book.
func (b *BookList) FilterByStatus(status *models.ReadStatus) {
	b.setFilter(func(f models.BookFilter) models.BookFilter {
		if status == nil {
			f.Status = nil
		} else {
			s := *status
			f.Status = &s
		}
		return f
	})
}

func (b *BookList) Snapshot() BookListState {
	return b.store.Snapshot()
}

// State streams the list variant until ctx is done or the screen closes.
func (b *BookList) State(ctx context.Context) <-chan ListState[models.Book] {
	ctx = b.scope.Bind(ctx)
	return Project(ctx, b.store.Subscribe(ctx), projectBookList)
}

func projectBookList(s BookListState) ListState[models.Book] {
	return ToListState(s.Loading, s.Books, s.Err)
}

func (b *BookList) Close() {
	b.scope.Close()
}

func sameFilter(a, b models.BookFilter) bool {
	if a.Sort != b.Sort {
		return false
	}
	if a.Status == nil || b.Status == nil {
		return a.Status == nil && b.Status == nil
	}
	return *a.Status == *b.Status
}
