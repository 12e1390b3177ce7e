// Package usecase holds the application operations the presentation layer and
// the HTTP API call. Each use case is a small type with a single Execute
// method and depends only on the repository methods it needs.
//
// The repositories in internal/database satisfy these interfaces:
//
//	var _ usecase.BookSaver = (*books.Repository)(nil)
package usecase

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

// AuthorSaver creates or refreshes an author.
type AuthorSaver interface {
	Save(ctx context.Context, in models.AuthorInput) (string, error)
}

// AuthorStreamer lists authors.
type AuthorStreamer interface {
	Stream(ctx context.Context) <-chan observe.Update[[]models.Author]
}

// AuthorRenamer renames an author, returning its new identity.
type AuthorRenamer interface {
	Update(ctx context.Context, id string, in models.AuthorInput) (string, error)
}

type AuthorFavouriteSetter interface {
	SetFavourite(ctx context.Context, id string, favourite bool) error
}

type GenreSaver interface {
	Save(ctx context.Context, in models.GenreInput) (string, error)
}

type GenreStreamer interface {
	Stream(ctx context.Context) <-chan observe.Update[[]models.Genre]
}

type GenreRenamer interface {
	Update(ctx context.Context, id string, in models.GenreInput) (string, error)
}

type GenreFavouriteSetter interface {
	SetFavourite(ctx context.Context, id string, favourite bool) error
}

type BookSaver interface {
	Save(ctx context.Context, in models.BookInput) (uint, error)
}

type BookUpdater interface {
	Update(ctx context.Context, id uint, in models.BookInput) error
}

type BookDeleter interface {
	Delete(ctx context.Context, id uint) error
}

// BookStreamer lists books matching a filter.
type BookStreamer interface {
	Stream(ctx context.Context, filter models.BookFilter) <-chan observe.Update[[]models.Book]
}

// BookByIDStreamer looks up a single book; the stream emits nil while it is absent.
type BookByIDStreamer interface {
	StreamByID(ctx context.Context, id uint) <-chan observe.Update[*models.Book]
}

type BookForQuoteStreamer interface {
	StreamForQuote(ctx context.Context, query string) <-chan observe.Update[[]models.BookForQuote]
}

type QuoteSaver interface {
	Save(ctx context.Context, in models.QuoteInput) (uint, error)
}

type QuoteUpdater interface {
	Update(ctx context.Context, id uint, in models.QuoteInput) error
}

type QuoteDeleter interface {
	Delete(ctx context.Context, id uint) error
}

type QuoteStreamer interface {
	Stream(ctx context.Context) <-chan observe.Update[[]models.Quote]
}

type BookQuoteStreamer interface {
	StreamForBook(ctx context.Context, bookID uint) <-chan observe.Update[[]models.Quote]
}

// QuoteByIDStreamer looks up a single quote; the stream emits nil while it is absent.
type QuoteByIDStreamer interface {
	StreamByID(ctx context.Context, id uint) <-chan observe.Update[*models.Quote]
}

type StatusStreamer interface {
	Stream(ctx context.Context) <-chan observe.Update[[]models.BookReadStatus]
}
