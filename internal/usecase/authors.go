package usecase

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

type CreateAuthor struct {
	repo AuthorSaver
}

func NewCreateAuthor(repo AuthorSaver) *CreateAuthor {
	return &CreateAuthor{repo: repo}
}

// Execute saves the author and returns its identity.
func (uc *CreateAuthor) Execute(ctx context.Context, in models.AuthorInput) (string, error) {
	return uc.repo.Save(ctx, in)
}

type GetAuthors struct {
	repo AuthorStreamer
}

func NewGetAuthors(repo AuthorStreamer) *GetAuthors {
	return &GetAuthors{repo: repo}
}

func (uc *GetAuthors) Execute(ctx context.Context) <-chan observe.Update[[]models.Author] {
	return uc.repo.Stream(ctx)
}

type RenameAuthor struct {
	repo AuthorRenamer
}

func NewRenameAuthor(repo AuthorRenamer) *RenameAuthor {
	return &RenameAuthor{repo: repo}
}

// Execute renames the author and returns its new identity.
func (uc *RenameAuthor) Execute(ctx context.Context, id string, in models.AuthorInput) (string, error) {
	return uc.repo.Update(ctx, id, in)
}

type SetAuthorFavourite struct {
	repo AuthorFavouriteSetter
}

func NewSetAuthorFavourite(repo AuthorFavouriteSetter) *SetAuthorFavourite {
	return &SetAuthorFavourite{repo: repo}
}

func (uc *SetAuthorFavourite) Execute(ctx context.Context, id string, favourite bool) error {
	return uc.repo.SetFavourite(ctx, id, favourite)
}
