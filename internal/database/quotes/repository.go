// Package quotes provides database operations for quotes.
//
// Quotes are loaded with their book and the book's author so callers can show
// where a quote comes from without a second lookup.
//
// # Usage
//
//	repo := quotes.NewRepository(db)
//	id, err := repo.Save(ctx, models.QuoteInput{BookID: bookID, Page: 12, Text: "..."})
package quotes

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/mapping"
	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

var quoteTables = []observe.Table{observe.TableQuotes, observe.TableBooks, observe.TableAuthors}

// Repository handles all quote database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new quotes repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

func withBook(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Book").Preload("Book.Author")
}

// Save inserts a quote. CreatedAt defaults to the insert time.
func (r *Repository) Save(ctx context.Context, in models.QuoteInput) (uint, error) {
	row := mapping.QuoteToRow(in)
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	}, observe.TableQuotes)
	if err != nil {
		return 0, apperr.CreateFailed(err, "quote")
	}
	return row.ID, nil
}

// Stream emits every quote, newest first.
func (r *Repository) Stream(ctx context.Context) <-chan observe.Update[[]models.Quote] {
	return database.Observe(ctx, r.db, func(tx *gorm.DB) ([]models.Quote, error) {
		var rows []entities.Quote
		if err := withBook(tx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
			return nil, apperr.Unknown(err, "list quotes")
		}
		return mapping.QuotesFromRows(rows), nil
	}, quoteTables...)
}

// StreamForBook emits the quotes of one book in page order.
func (r *Repository) StreamForBook(ctx context.Context, bookID uint) <-chan observe.Update[[]models.Quote] {
	return database.Observe(ctx, r.db, func(tx *gorm.DB) ([]models.Quote, error) {
		var rows []entities.Quote
		err := withBook(tx).Where("book_id = ?", bookID).
			Order("page ASC, id ASC").
			Find(&rows).Error
		if err != nil {
			return nil, apperr.Unknown(err, "list book quotes")
		}
		return mapping.QuotesFromRows(rows), nil
	}, quoteTables...)
}

// StreamByID emits the quote with id, or nil while it does not exist.
func (r *Repository) StreamByID(ctx context.Context, id uint) <-chan observe.Update[*models.Quote] {
	return database.Observe(ctx, r.db, func(tx *gorm.DB) (*models.Quote, error) {
		var row entities.Quote
		err := withBook(tx).First(&row, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, apperr.Unknown(err, "get quote")
		}
		quote := mapping.QuoteFromRow(row)
		return &quote, nil
	}, quoteTables...)
}

// Update replaces book, page, text and thought of the quote with id. The
// creation time is only changed when the input carries one.
func (r *Repository) Update(ctx context.Context, id uint, in models.QuoteInput) error {
	row := mapping.QuoteToRow(in)
	columns := []string{"book_id", "page", "quote", "thought"}
	if in.CreatedAt != nil {
		columns = append(columns, "created_at")
	}
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&entities.Quote{}).Where("id = ?", id).Select(columns).Updates(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("quote %d", id)
		}
		return nil
	}, observe.TableQuotes)
	if err != nil {
		return apperr.UpdateFailed(err, "quote")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&entities.Quote{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("quote %d", id)
		}
		return nil
	}, observe.TableQuotes)
	if err != nil {
		return apperr.DeleteFailed(err, "quote")
	}
	return nil
}
