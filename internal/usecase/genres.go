package usecase

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

type CreateGenre struct {
	repo GenreSaver
}

func NewCreateGenre(repo GenreSaver) *CreateGenre {
	return &CreateGenre{repo: repo}
}

func (uc *CreateGenre) Execute(ctx context.Context, in models.GenreInput) (string, error) {
	return uc.repo.Save(ctx, in)
}

type GetGenres struct {
	repo GenreStreamer
}

func NewGetGenres(repo GenreStreamer) *GetGenres {
	return &GetGenres{repo: repo}
}

func (uc *GetGenres) Execute(ctx context.Context) <-chan observe.Update[[]models.Genre] {
	return uc.repo.Stream(ctx)
}

type RenameGenre struct {
	repo GenreRenamer
}

func NewRenameGenre(repo GenreRenamer) *RenameGenre {
	return &RenameGenre{repo: repo}
}

func (uc *RenameGenre) Execute(ctx context.Context, id string, in models.GenreInput) (string, error) {
	return uc.repo.Update(ctx, id, in)
}

type SetGenreFavourite struct {
	repo GenreFavouriteSetter
}

func NewSetGenreFavourite(repo GenreFavouriteSetter) *SetGenreFavourite {
	return &SetGenreFavourite{repo: repo}
}

func (uc *SetGenreFavourite) Execute(ctx context.Context, id string, favourite bool) error {
	return uc.repo.SetFavourite(ctx, id, favourite)
}
