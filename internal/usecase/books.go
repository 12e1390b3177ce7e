package usecase

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

type CreateBook struct {
	repo BookSaver
}

func NewCreateBook(repo BookSaver) *CreateBook {
	return &CreateBook{repo: repo}
}

func (uc *CreateBook) Execute(ctx context.Context, in models.BookInput) (uint, error) {
	return uc.repo.Save(ctx, in)
}

type UpdateBook struct {
	repo BookUpdater
}

func NewUpdateBook(repo BookUpdater) *UpdateBook {
	return &UpdateBook{repo: repo}
}

func (uc *UpdateBook) Execute(ctx context.Context, id uint, in models.BookInput) error {
	return uc.repo.Update(ctx, id, in)
}

type DeleteBook struct {
	repo BookDeleter
}

func NewDeleteBook(repo BookDeleter) *DeleteBook {
	return &DeleteBook{repo: repo}
}

func (uc *DeleteBook) Execute(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}

// GetBook streams one book. While the book does not exist the stream carries
// an apperr.ErrNotFound error instead of a value.
type GetBook struct {
	repo BookByIDStreamer
}

func NewGetBook(repo BookByIDStreamer) *GetBook {
	return &GetBook{repo: repo}
}

func (uc *GetBook) Execute(ctx context.Context, id uint) <-chan observe.Update[models.Book] {
	return requirePresent(ctx, uc.repo.StreamByID(ctx, id), func() error {
		return apperr.NotFoundf("book %d not found", id)
	})
}

type GetFilteredBooks struct {
	repo BookStreamer
}

func NewGetFilteredBooks(repo BookStreamer) *GetFilteredBooks {
	return &GetFilteredBooks{repo: repo}
}

func (uc *GetFilteredBooks) Execute(ctx context.Context, filter models.BookFilter) <-chan observe.Update[[]models.Book] {
	return uc.repo.Stream(ctx, filter)
}

// SearchBooksForQuote finds the books a new quote can be attached to.
type SearchBooksForQuote struct {
	repo BookForQuoteStreamer
}

func NewSearchBooksForQuote(repo BookForQuoteStreamer) *SearchBooksForQuote {
	return &SearchBooksForQuote{repo: repo}
}

func (uc *SearchBooksForQuote) Execute(ctx context.Context, query string) <-chan observe.Update[[]models.BookForQuote] {
	return uc.repo.StreamForQuote(ctx, query)
}
