// Package genres provides database operations for genres.
//
// # Usage
//
//	repo := genres.NewRepository(db)
//	id, err := repo.Save(ctx, models.GenreInput{Name: "Poetry"})
package genres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/mapping"
	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

// Repository handles all genre database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new genres repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// Save inserts the genre; saving an existing name is a no-op that returns its id.
func (r *Repository) Save(ctx context.Context, in models.GenreInput) (string, error) {
	row := mapping.GenreToRow(in)
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	}, observe.TableGenres)
	if err != nil {
		return "", apperr.CreateFailed(err, "genre")
	}
	return row.ID, nil
}

// Stream emits all genres ordered by name.
func (r *Repository) Stream(ctx context.Context) <-chan observe.Update[[]models.Genre] {
	return database.Observe(ctx, r.db, func(tx *gorm.DB) ([]models.Genre, error) {
		var rows []entities.Genre
		if err := tx.Order("name ASC, id ASC").Find(&rows).Error; err != nil {
			return nil, apperr.Unknown(err, "list genres")
		}
		return mapping.GenresFromRows(rows), nil
	}, observe.TableGenres)
}

// StreamByID emits the genre with id, or nil while it does not exist.
func (r *Repository) StreamByID(ctx context.Context, id string) <-chan observe.Update[*models.Genre] {
	return database.Observe(ctx, r.db, func(tx *gorm.DB) (*models.Genre, error) {
		var row entities.Genre
		err := tx.Where("id = ?", id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, apperr.Unknown(err, "get genre")
		}
		genre := mapping.GenreFromRow(row)
		return &genre, nil
	}, observe.TableGenres)
}

// Update renames the genre with id and returns its new id, which is the new
// name. Books tagged with the genre follow it. Renaming onto another existing
// genre fails.
func (r *Repository) Update(ctx context.Context, id string, in models.GenreInput) (string, error) {
	row := mapping.GenreToRow(in)
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		return tx.Transaction(func(tx *gorm.DB) error {
			if row.ID != id {
				var taken int64
				if err := tx.Model(&entities.Genre{}).Where("id = ?", row.ID).Count(&taken).Error; err != nil {
					return err
				}
				if taken > 0 {
					return fmt.Errorf("genre %q already exists", row.ID)
				}
			}
			return updateOne(tx.Model(&entities.Genre{}).Where("id = ?", id).
				Updates(map[string]any{"id": row.ID, "name": row.Name}), id)
		})
	}, observe.TableGenres, observe.TableBooks)
	if err != nil {
		return "", apperr.UpdateFailed(err, "genre")
	}
	return row.ID, nil
}

func (r *Repository) SetFavourite(ctx context.Context, id string, favourite bool) error {
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		return updateOne(tx.Model(&entities.Genre{}).Where("id = ?", id).Update("is_favourite", favourite), id)
	}, observe.TableGenres)
	if err != nil {
		return apperr.UpdateFailed(err, "genre favourite")
	}
	return nil
}

// Delete removes the genre; its books keep existing without a genre.
func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		return updateOne(tx.Where("id = ?", id).Delete(&entities.Genre{}), id)
	}, observe.TableGenres, observe.TableBooks)
	if err != nil {
		return apperr.DeleteFailed(err, "genre")
	}
	return nil
}

func updateOne(res *gorm.DB, id string) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("genre %q", id)
	}
	return nil
}
