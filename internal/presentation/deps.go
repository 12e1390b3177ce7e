package presentation

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

// The interfaces below are satisfied by the use cases in internal/usecase.

type FilteredBooksGetter interface {
	Execute(ctx context.Context, filter models.BookFilter) <-chan observe.Update[[]models.Book]
}

type BookGetter interface {
	Execute(ctx context.Context, id uint) <-chan observe.Update[models.Book]
}

type BookCreator interface {
	Execute(ctx context.Context, in models.BookInput) (uint, error)
}

type BookUpdater interface {
	Execute(ctx context.Context, id uint, in models.BookInput) error
}

type BookDeleter interface {
	Execute(ctx context.Context, id uint) error
}

type BooksForQuoteSearcher interface {
	Execute(ctx context.Context, query string) <-chan observe.Update[[]models.BookForQuote]
}

type AuthorsGetter interface {
	Execute(ctx context.Context) <-chan observe.Update[[]models.Author]
}

type AuthorCreator interface {
	Execute(ctx context.Context, in models.AuthorInput) (string, error)
}

type GenresGetter interface {
	Execute(ctx context.Context) <-chan observe.Update[[]models.Genre]
}

type GenreCreator interface {
	Execute(ctx context.Context, in models.GenreInput) (string, error)
}

// FavouriteSetter flags an author or genre as favourite.
type FavouriteSetter interface {
	Execute(ctx context.Context, id string, favourite bool) error
}

type StatusesGetter interface {
	Execute(ctx context.Context) <-chan observe.Update[[]models.BookReadStatus]
}

type QuotesGetter interface {
	Execute(ctx context.Context) <-chan observe.Update[[]models.Quote]
}

type BookQuotesGetter interface {
	Execute(ctx context.Context, bookID uint) <-chan observe.Update[[]models.Quote]
}

type QuoteGetter interface {
	Execute(ctx context.Context, id uint) <-chan observe.Update[models.Quote]
}

type QuoteCreator interface {
	Execute(ctx context.Context, in models.QuoteInput) (uint, error)
}

type QuoteUpdater interface {
	Execute(ctx context.Context, id uint, in models.QuoteInput) error
}

type QuoteDeleter interface {
	Execute(ctx context.Context, id uint) error
}
