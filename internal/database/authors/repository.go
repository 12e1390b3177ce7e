// Package authors provides database operations for authors.
//
// Authors are keyed by a natural identity derived from name and memo (see
// entities.AuthorIdentity), so saving an author that already exists updates it
// in place instead of adding a second row.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	id, err := repo.Save(ctx, models.AuthorInput{Name: "Ursula K. Le Guin"})
//	for u := range repo.Stream(ctx) {
//	    ...
//	}
package authors

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

// Repository handles all author database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new authors repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// Save inserts the author or, when its identity already exists, overwrites
// name and memo while keeping the favourite flag.
func (r *Repository) Save(ctx context.Context, in models.AuthorInput) (string, error) {
	row := mapping.AuthorToRow(in)
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "memo"}),
		}).Create(&row).Error
	}, observe.TableAuthors)
	if err != nil {
		return "", apperr.CreateFailed(err, "author")
	}
	return row.ID, nil
}

// Stream emits all authors ordered by name, then id.
func (r *Repository) Stream(ctx context.Context) <-chan observe.Update[[]models.Author] {
	return database.Observe(ctx, r.db, func(tx *gorm.DB) ([]models.Author, error) {
		var rows []entities.Author
		if err := tx.Order("name ASC, id ASC").Find(&rows).Error; err != nil {
			return nil, apperr.Unknown(err, "list authors")
		}
		return mapping.AuthorsFromRows(rows), nil
	}, observe.TableAuthors)
}

// StreamByID emits the author with id, or nil while it does not exist.
func (r *Repository) StreamByID(ctx context.Context, id string) <-chan observe.Update[*models.Author] {
	return database.Observe(ctx, r.db, func(tx *gorm.DB) (*models.Author, error) {
		var row entities.Author
		err := tx.Where("id = ?", id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, apperr.Unknown(err, "get author")
		}
		author := mapping.AuthorFromRow(row)
		return &author, nil
	}, observe.TableAuthors)
}

// Update renames the author with id and returns its new identity. Books
// written by the author follow it to the new id. Renaming onto the identity
// of another existing author fails.
func (r *Repository) Update(ctx context.Context, id string, in models.AuthorInput) (string, error) {
	row := mapping.AuthorToRow(in)
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		return tx.Transaction(func(tx *gorm.DB) error {
			if row.ID != id {
				var taken int64
				if err := tx.Model(&entities.Author{}).Where("id = ?", row.ID).Count(&taken).Error; err != nil {
					return err
				}
				if taken > 0 {
					return fmt.Errorf("author %q already exists", row.ID)
				}
			}
			res := tx.Model(&entities.Author{}).Where("id = ?", id).
				Updates(map[string]any{"id": row.ID, "name": row.Name, "memo": row.Memo})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.NotFoundf("author %q", id)
			}
			return nil
		})
	}, observe.TableAuthors, observe.TableBooks)
	if err != nil {
		return "", apperr.UpdateFailed(err, "author")
	}
	return row.ID, nil
}

// SetFavourite updates the favourite flag of the author with id.
func (r *Repository) SetFavourite(ctx context.Context, id string, favourite bool) error {
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&entities.Author{}).Where("id = ?", id).Update("is_favourite", favourite)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("author %q", id)
		}
		return nil
	}, observe.TableAuthors)
	if err != nil {
		return apperr.UpdateFailed(err, "author favourite")
	}
	return nil
}

// Delete removes the author; books written by it lose their author reference.
func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&entities.Author{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("author %q", id)
		}
		return nil
	}, observe.TableAuthors, observe.TableBooks)
	if err != nil {
		return apperr.DeleteFailed(err, "author")
	}
	return nil
}
