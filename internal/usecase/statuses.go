package usecase

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

type GetReadStatuses struct {
	repo StatusStreamer
}

func NewGetReadStatuses(repo StatusStreamer) *GetReadStatuses {
	return &GetReadStatuses{repo: repo}
}

func (uc *GetReadStatuses) Execute(ctx context.Context) <-chan observe.Update[[]models.BookReadStatus] {
	return uc.repo.Stream(ctx)
}
