package usecase

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

type CreateQuote struct {
	repo QuoteSaver
}

func NewCreateQuote(repo QuoteSaver) *CreateQuote {
	return &CreateQuote{repo: repo}
}

func (uc *CreateQuote) Execute(ctx context.Context, in models.QuoteInput) (uint, error) {
	return uc.repo.Save(ctx, in)
}

type UpdateQuote struct {
	repo QuoteUpdater
}

func NewUpdateQuote(repo QuoteUpdater) *UpdateQuote {
	return &UpdateQuote{repo: repo}
}

func (uc *UpdateQuote) Execute(ctx context.Context, id uint, in models.QuoteInput) error {
	return uc.repo.Update(ctx, id, in)
}

type DeleteQuote struct {
	repo QuoteDeleter
}

func NewDeleteQuote(repo QuoteDeleter) *DeleteQuote {
	return &DeleteQuote{repo: repo}
}

func (uc *DeleteQuote) Execute(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}

// GetQuote streams one quote, reporting apperr.ErrNotFound while it is absent.
type GetQuote struct {
	repo QuoteByIDStreamer
}

func NewGetQuote(repo QuoteByIDStreamer) *GetQuote {
	return &GetQuote{repo: repo}
}

func (uc *GetQuote) Execute(ctx context.Context, id uint) <-chan observe.Update[models.Quote] {
	return requirePresent(ctx, uc.repo.StreamByID(ctx, id), func() error {
		return apperr.NotFoundf("quote %d not found", id)
	})
}

type GetQuotes struct {
	repo QuoteStreamer
}

func NewGetQuotes(repo QuoteStreamer) *GetQuotes {
	return &GetQuotes{repo: repo}
}

func (uc *GetQuotes) Execute(ctx context.Context) <-chan observe.Update[[]models.Quote] {
	return uc.repo.Stream(ctx)
}

type GetBookQuotes struct {
	repo BookQuoteStreamer
}

func NewGetBookQuotes(repo BookQuoteStreamer) *GetBookQuotes {
	return &GetBookQuotes{repo: repo}
}

func (uc *GetBookQuotes) Execute(ctx context.Context, bookID uint) <-chan observe.Update[[]models.Quote] {
	return uc.repo.StreamForBook(ctx, bookID)
}
