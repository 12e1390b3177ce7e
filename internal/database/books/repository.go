// Package books provides database operations for books.
//
// Books are always loaded with their author, genre and quotes. List streams
// re-emit whenever any of those tables change, so a renamed author or a new
// quote shows up in every open book list.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	id, err := repo.Save(ctx, input)
//	for u := range repo.Stream(ctx, models.BookFilter{Sort: models.DefaultBookSort}) {
//	    ...
//	}
package books

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/mapping"
	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

// updatableColumns are replaced wholesale by Update.
var updatableColumns = []string{
	"title", "read_date", "memo", "thought", "rating",
	"author_id", "genre_id", "status", "updated_at",
}

var bookTables = []observe.Table{
	observe.TableBooks, observe.TableAuthors, observe.TableGenres, observe.TableQuotes,
}

// Repository handles all book database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new books repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Author").Preload("Genre").
		Preload("Quotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("page ASC, id ASC")
		})
}

// Save inserts a new book and returns its id.
func (r *Repository) Save(ctx context.Context, in models.BookInput) (uint, error) {
	row := mapping.BookToRow(in)
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	}, observe.TableBooks)
	if err != nil {
		return 0, apperr.CreateFailed(err, "book")
	}
	return row.ID, nil
}

// Stream emits the books matching filter, ordered by the filter's sort key.
// Books with equal keys keep storage (id) order in both directions.
func (r *Repository) Stream(ctx context.Context, filter models.BookFilter) <-chan observe.Update[[]models.Book] {
	return database.Observe(ctx, r.db, func(tx *gorm.DB) ([]models.Book, error) {
		query := withRelations(tx).Order("id ASC")
		if filter.Status != nil {
			query = query.Where("status = ?", string(*filter.Status))
		}

		var rows []entities.Book
		if err := query.Find(&rows).Error; err != nil {
			return nil, apperr.Unknown(err, "list books")
		}
		return mapping.SortBooks(mapping.BooksFromRows(rows), filter.Sort), nil
	}, bookTables...)
}

// StreamByID emits the book with id, or nil while it does not exist.
func (r *Repository) StreamByID(ctx context.Context, id uint) <-chan observe.Update[*models.Book] {
	return database.Observe(ctx, r.db, func(tx *gorm.DB) (*models.Book, error) {
		var row entities.Book
		err := withRelations(tx).First(&row, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, apperr.Unknown(err, "get book")
		}
		book := mapping.BookFromRow(row)
		return &book, nil
	}, bookTables...)
}

// Update replaces every editable field of the book with id.
func (r *Repository) Update(ctx context.Context, id uint, in models.BookInput) error {
	row := mapping.BookToRow(in)
	row.UpdatedAt = time.Now()
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&entities.Book{}).Where("id = ?", id).
			Select(updatableColumns).Updates(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("book %d", id)
		}
		return nil
	}, observe.TableBooks)
	if err != nil {
		return apperr.UpdateFailed(err, "book")
	}
	return nil
}

// Delete removes the book together with its quotes.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	err := r.db.Write(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&entities.Book{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("book %d", id)
		}
		return nil
	}, observe.TableBooks, observe.TableQuotes)
	if err != nil {
		return apperr.DeleteFailed(err, "book")
	}
	return nil
}

// StreamForQuote emits the books whose title contains query, ordered by
// title. An empty query matches every book. Matching ignores case for ASCII
// letters only, following SQLite's LIKE; other letters must match exactly.
func (r *Repository) StreamForQuote(ctx context.Context, query string) <-chan observe.Update[[]models.BookForQuote] {
	pattern := "%" + escapeLike(query) + "%"
	return database.Observe(ctx, r.db, func(tx *gorm.DB) ([]models.BookForQuote, error) {
		var rows []entities.Book
		err := tx.Preload("Author").
			Where(`title LIKE ? ESCAPE '\'`, pattern).
			Order("title ASC, id ASC").
			Find(&rows).Error
		if err != nil {
			return nil, apperr.Unknown(err, "search books")
		}
		return mapping.BooksForQuoteFromRows(rows), nil
	}, observe.TableBooks, observe.TableAuthors)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
