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

// QuotesController serves /api/quotes.
type QuotesController struct {
	list   *usecase.GetQuotes
	get    *usecase.GetQuote
	create *usecase.CreateQuote
	update *usecase.UpdateQuote
	delete *usecase.DeleteQuote
}

func NewQuotesController(uc UseCases) *QuotesController {
	return &QuotesController{
		list:   uc.GetQuotes,
		get:    uc.GetQuote,
		create: uc.CreateQuote,
		update: uc.UpdateQuote,
		delete: uc.DeleteQuote,
	}
}

type quoteRequest struct {
	BookID    uint       `json:"book_id" binding:"required"`
	Page      int        `json:"page" binding:"gte=0"`
	Text      string     `json:"text" binding:"required"`
	Thought   string     `json:"thought"`
	CreatedAt *time.Time `json:"created_at"`
}

func (r quoteRequest) input() (models.QuoteInput, string) {
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return models.QuoteInput{}, "text is required"
	}
	return models.QuoteInput{
		BookID:    r.BookID,
		Page:      r.Page,
		Text:      text,
		Thought:   r.Thought,
		CreatedAt: r.CreatedAt,
	}, ""
}

func (qc *QuotesController) bind(c *gin.Context) (models.QuoteInput, bool) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid quote: "+err.Error())
		return models.QuoteInput{}, false
	}
	in, problem := req.input()
	if problem != "" {
		respondBadRequest(c, problem)
		return models.QuoteInput{}, false
	}
	return in, true
}

// List handles GET /api/quotes, newest first.
func (qc *QuotesController) List(c *gin.Context) {
	quotes, err := observe.Get(c.Request.Context(), qc.list.Execute)
	if err != nil {
		respondAppError(c, err, "list quotes")
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func (qc *QuotesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := observe.Get(c.Request.Context(), func(ctx context.Context) <-chan observe.Update[models.Quote] {
		return qc.get.Execute(ctx, id)
	})
	if err != nil {
		respondAppError(c, err, "get quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Create handles POST /api/quotes. The book must exist.
func (qc *QuotesController) Create(c *gin.Context) {
	in, ok := qc.bind(c)
	if !ok {
		return
	}

	id, err := qc.create.Execute(c.Request.Context(), in)
	if err != nil {
		respondAppError(c, err, "create quote")
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (qc *QuotesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	in, ok := qc.bind(c)
	if !ok {
		return
	}

	if err := qc.update.Execute(c.Request.Context(), id, in); err != nil {
		respondAppError(c, err, "update quote")
		return
	}
	respondSuccess(c, "quote updated")
}

func (qc *QuotesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := qc.delete.Execute(c.Request.Context(), id); err != nil {
		respondAppError(c, err, "delete quote")
		return
	}
	c.Status(http.StatusNoContent)
}
