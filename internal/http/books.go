package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
	"github.com/mrlokans/bookshelf/internal/usecase"
)

// BooksController serves /api/books.
type BooksController struct {
	list   *usecase.GetFilteredBooks
	get    *usecase.GetBook
	create *usecase.CreateBook
	update *usecase.UpdateBook
	delete *usecase.DeleteBook
	search *usecase.SearchBooksForQuote
	quotes *usecase.GetBookQuotes
}

func NewBooksController(uc UseCases) *BooksController {
	return &BooksController{
		list:   uc.GetFilteredBooks,
		get:    uc.GetBook,
		create: uc.CreateBook,
		update: uc.UpdateBook,
		delete: uc.DeleteBook,
		search: uc.SearchBooksForQuote,
		quotes: uc.GetBookQuotes,
	}
}

// bookRequest is the body of create and update. Update replaces every field.
type bookRequest struct {
	Title    string  `json:"title" binding:"required"`
	ReadDate string  `json:"read_date"`
	Memo     string  `json:"memo"`
	Thought  string  `json:"thought"`
	Rating   int     `json:"rating" binding:"gte=0"`
	AuthorID *string `json:"author_id"`
	GenreID  *string `json:"genre_id"`
	Status   string  `json:"status"`
}

func (r bookRequest) input() (models.BookInput, string) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return models.BookInput{}, "title is required"
	}

	readDate, ok := parseReadDate(r.ReadDate)
	if !ok {
		return models.BookInput{}, "read_date must be YYYY-MM-DD or RFC 3339"
	}

	status := models.StatusHaveRead
	if r.Status != "" {
		status = models.ReadStatus(r.Status)
		if !status.Valid() {
			return models.BookInput{}, "unknown status " + r.Status
		}
	}

	return models.BookInput{
		Title:    title,
		ReadDate: readDate,
		Memo:     r.Memo,
		Thought:  r.Thought,
		Rating:   r.Rating,
		AuthorID: nonEmpty(r.AuthorID),
		GenreID:  nonEmpty(r.GenreID),
		Status:   status,
	}, ""
}

// parseReadDate accepts a calendar date or a full timestamp. Empty means today.
func parseReadDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// parseBookFilter reads ?sort=title|read_date&order=asc|desc&status=...
func parseBookFilter(c *gin.Context) (models.BookFilter, bool) {
	filter := models.BookFilter{Sort: models.DefaultBookSort}

	if key := c.Query("sort"); key != "" {
		filter.Sort.Key = models.ParseBookSortKey(key)
	}
	switch strings.ToLower(c.Query("order")) {
	case "":
	case "asc":
		filter.Sort.Ascending = true
	case "desc":
		filter.Sort.Ascending = false
	default:
		respondBadRequest(c, "order must be asc or desc")
		return filter, false
	}

	if s := c.Query("status"); s != "" {
		status := models.ReadStatus(s)
		if !status.Valid() {
			respondBadRequest(c, "unknown status "+s)
			return filter, false
		}
		filter.Status = &status
	}
	return filter, true
}

// List handles GET /api/books
func (bc *BooksController) List(c *gin.Context) {
	filter, ok := parseBookFilter(c)
	if !ok {
		return
	}

	books, err := observe.Get(c.Request.Context(), func(ctx context.Context) <-chan observe.Update[[]models.Book] {
		return bc.list.Execute(ctx, filter)
	})
	if err != nil {
		respondAppError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// Get handles GET /api/books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := observe.Get(c.Request.Context(), func(ctx context.Context) <-chan observe.Update[models.Book] {
		return bc.get.Execute(ctx, id)
	})
	if err != nil {
		respondAppError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create handles POST /api/books
func (bc *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid book: "+err.Error())
		return
	}
	in, problem := req.input()
	if problem != "" {
		respondBadRequest(c, problem)
		return
	}

	id, err := bc.create.Execute(c.Request.Context(), in)
	if err != nil {
		respondAppError(c, err, "create book")
		return
	}
	respondCreated(c, gin.H{"id": id})
}

// Update handles PUT /api/books/:id
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid book: "+err.Error())
		return
	}
	in, problem := req.input()
	if problem != "" {
		respondBadRequest(c, problem)
		return
	}

	if err := bc.update.Execute(c.Request.Context(), id, in); err != nil {
		respondAppError(c, err, "update book")
		return
	}
	respondSuccess(c, "book updated")
}

// Delete handles DELETE /api/books/:id
// Quotes of the book are removed with it.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.delete.Execute(c.Request.Context(), id); err != nil {
		respondAppError(c, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}

// Quotes handles GET /api/books/:id/quotes
func (bc *BooksController) Quotes(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quotes, err := observe.Get(c.Request.Context(), func(ctx context.Context) <-chan observe.Update[[]models.Quote] {
		return bc.quotes.Execute(ctx, id)
	})
	if err != nil {
		respondAppError(c, err, "list book quotes")
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// Search handles GET /api/books/search?q=
// Matches titles case-insensitively, an empty query lists every book.
func (bc *BooksController) Search(c *gin.Context) {
	books, err := observe.Get(c.Request.Context(), func(ctx context.Context) <-chan observe.Update[[]models.BookForQuote] {
		return bc.search.Execute(ctx, c.Query("q"))
	})
	if err != nil {
		respondAppError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, books)
}
