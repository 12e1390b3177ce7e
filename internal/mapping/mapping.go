// Package mapping converts between stored rows (internal/entities) and the
// caller-facing models (internal/models).
//
// Every function here is pure and total: inputs come either from the store's
// own schema or from validated forms, so nothing can fail.
package mapping

import (
	"sort"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/models"
)

func AuthorFromRow(row entities.Author) models.Author {
	return models.Author{
		ID:          row.ID,
		Name:        row.Name,
		Memo:        cloneString(row.Memo),
		IsFavourite: row.IsFavourite,
	}
}

// AuthorToRow builds a new author row; the identity is derived from name and memo
// and the favourite flag starts out false.
func AuthorToRow(in models.AuthorInput) entities.Author {
	return entities.Author{
		ID:   entities.AuthorIdentity(in.Name, in.Memo),
		Name: in.Name,
		Memo: cloneString(in.Memo),
	}
}

func GenreFromRow(row entities.Genre) models.Genre {
	return models.Genre{
		ID:          row.ID,
		Name:        row.Name,
		IsFavourite: row.IsFavourite,
	}
}

func GenreToRow(in models.GenreInput) entities.Genre {
	return entities.Genre{
		ID:   in.Name,
		Name: in.Name,
	}
}

// BookFromRow maps a book row with its preloaded author, genre and quotes.
func BookFromRow(row entities.Book) models.Book {
	book := models.Book{
		ID:       row.ID,
		Title:    row.Title,
		ReadDate: row.ReadDate.UTC(),
		Memo:     row.Memo,
		Thought:  row.Thought,
		Rating:   row.Rating,
		Status:   models.ParseReadStatus(row.Status),
		Quotes:   make([]models.Quote, 0, len(row.Quotes)),
	}
	if row.Author != nil {
		author := AuthorFromRow(*row.Author)
		book.Author = &author
	}
	if row.Genre != nil {
		genre := GenreFromRow(*row.Genre)
		book.Genre = &genre
	}
	for _, q := range row.Quotes {
		quote := QuoteFromRow(q)
		// Quotes preloaded through their book do not carry the back reference.
		quote.BookTitle = row.Title
		if book.Author != nil {
			quote.AuthorName = book.Author.Name
		}
		book.Quotes = append(book.Quotes, quote)
	}
	return book
}

func BookToRow(in models.BookInput) entities.Book {
	status := in.Status
	if !status.Valid() {
		status = models.StatusHaveRead
	}
	return entities.Book{
		Title:    in.Title,
		ReadDate: in.ReadDate.UTC(),
		Memo:     in.Memo,
		Thought:  in.Thought,
		Rating:   in.Rating,
		AuthorID: cloneString(in.AuthorID),
		GenreID:  cloneString(in.GenreID),
		Status:   string(status),
	}
}

// QuoteFromRow maps a quote row; the book title and author name are filled in
// when the row was loaded with its book (and the book's author).
func QuoteFromRow(row entities.Quote) models.Quote {
	quote := models.Quote{
		ID:        row.ID,
		BookID:    row.BookID,
		Page:      row.Page,
		Text:      row.Quote,
		Thought:   row.Thought,
		CreatedAt: row.CreatedAt.UTC(),
	}
	if row.Book != nil {
		quote.BookTitle = row.Book.Title
		if row.Book.Author != nil {
			quote.AuthorName = row.Book.Author.Name
		}
	}
	return quote
}

func QuoteToRow(in models.QuoteInput) entities.Quote {
	row := entities.Quote{
		BookID:  in.BookID,
		Page:    in.Page,
		Quote:   in.Text,
		Thought: in.Thought,
	}
	if in.CreatedAt != nil {
		row.CreatedAt = in.CreatedAt.UTC()
	}
	return row
}

// BookForQuoteFromRow projects a book row (with its author, when loaded) onto
// the picker entry used while composing a quote.
func BookForQuoteFromRow(row entities.Book) models.BookForQuote {
	display := row.Title
	if row.Author != nil && row.Author.Name != "" {
		display = row.Title + " (" + row.Author.Name + ")"
	}
	return models.BookForQuote{
		ID:           row.ID,
		Title:        row.Title,
		DisplayTitle: display,
	}
}

// ReadStatuses returns the status picker entries, numbered from 1 in display order.
func ReadStatuses() []models.BookReadStatus {
	statuses := make([]models.BookReadStatus, 0, len(models.AllReadStatuses))
	for i, s := range models.AllReadStatuses {
		statuses = append(statuses, models.BookReadStatus{
			ID:     i + 1,
			Status: s,
			Name:   s.DisplayName(),
		})
	}
	return statuses
}

// SortBooks returns a copy of books ordered by sort. The sort is stable, so
// books with equal keys keep their input order in either direction.
func SortBooks(books []models.Book, order models.BookSort) []models.Book {
	sorted := make([]models.Book, len(books))
	copy(sorted, books)

	less := func(a, b models.Book) bool {
		if order.Key == models.SortByTitle {
			return a.Title < b.Title
		}
		return a.ReadDate.Before(b.ReadDate)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order.Ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

// BooksFromRows maps a slice of rows, preserving order.
func BooksFromRows(rows []entities.Book) []models.Book {
	books := make([]models.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, BookFromRow(row))
	}
	return books
}

func AuthorsFromRows(rows []entities.Author) []models.Author {
	authors := make([]models.Author, 0, len(rows))
	for _, row := range rows {
		authors = append(authors, AuthorFromRow(row))
	}
	return authors
}

func GenresFromRows(rows []entities.Genre) []models.Genre {
	genres := make([]models.Genre, 0, len(rows))
	for _, row := range rows {
		genres = append(genres, GenreFromRow(row))
	}
	return genres
}

func QuotesFromRows(rows []entities.Quote) []models.Quote {
	quotes := make([]models.Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, QuoteFromRow(row))
	}
	return quotes
}

func BooksForQuoteFromRows(rows []entities.Book) []models.BookForQuote {
	books := make([]models.BookForQuote, 0, len(rows))
	for _, row := range rows {
		books = append(books, BookForQuoteFromRow(row))
	}
	return books
}

// DateOnly truncates t to midnight UTC, the precision read dates are entered with.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
