package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/presentation"
)

// BookListEvent is the payload of each "state" server-sent event.
type BookListEvent struct {
	Kind  string        `json:"kind"` // loading, empty, show_list or failed
	Books []models.Book `json:"books,omitempty"`
	Error string        `json:"error,omitempty"`
}

func bookListEvent(state presentation.ListState[models.Book]) BookListEvent {
	ev := BookListEvent{Kind: presentation.Kind[models.Book](state)}
	switch s := state.(type) {
	case presentation.ShowList[models.Book]:
		ev.Books = s.Items
	case presentation.Failed[models.Book]:
		ev.Error = s.Err.Error()
	}
	return ev
}

// StreamController pushes live screen state to clients.
type StreamController struct {
	books presentation.FilteredBooksGetter
}

func NewStreamController(uc UseCases) *StreamController {
	return &StreamController{books: uc.GetFilteredBooks}
}

// applyFilter drives the list through its intents to reach filter.
func applyFilter(list *presentation.BookList, filter models.BookFilter) {
	switch {
	case filter.Sort.Key == models.SortByTitle && filter.Sort.Ascending:
		list.SortByTitleAsc()
	case filter.Sort.Key == models.SortByTitle:
		list.SortByTitleDesc()
	case filter.Sort.Ascending:
		list.SortByReadDateAsc()
	default:
		list.SortByReadDateDesc()
	}
	list.FilterByStatus(filter.Status)
}

// Books handles GET /api/stream/books
// Emits the book list state on every change until the client disconnects.
// Accepts the same query parameters as GET /api/books.
func (sc *StreamController) Books(c *gin.Context) {
	filter, ok := parseBookFilter(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	list := presentation.NewBookList(ctx, sc.books)
	defer list.Close()
	applyFilter(list, filter)

	states := list.State(ctx)
	c.Stream(func(w io.Writer) bool {
		select {
		case state, ok := <-states:
			if !ok {
				return false
			}
			c.SSEvent("state", bookListEvent(state))
			return true
		case <-ctx.Done():
			return false
		}
	})
}
