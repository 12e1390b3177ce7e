package presentation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/dbtest"
	"github.com/mrlokans/bookshelf/internal/database/genres"
	"github.com/mrlokans/bookshelf/internal/database/quotes"
	"github.com/mrlokans/bookshelf/internal/database/statuses"
	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
	"github.com/mrlokans/bookshelf/internal/usecase"
)

type testApp struct {
	authors *authors.Repository
	genres  *genres.Repository
	books   *books.Repository
	quotes  *quotes.Repository
}

func setupApp(t *testing.T) *testApp {
	db := dbtest.Open(t)
	return &testApp{
		authors: authors.NewRepository(db),
		genres:  genres.NewRepository(db),
		books:   books.NewRepository(db),
		quotes:  quotes.NewRepository(db),
	}
}

func (a *testApp) bookFormDeps() BookFormDeps {
	return BookFormDeps{
		Book:         usecase.NewGetBook(a.books),
		Create:       usecase.NewCreateBook(a.books),
		Update:       usecase.NewUpdateBook(a.books),
		Authors:      usecase.NewGetAuthors(a.authors),
		CreateAuthor: usecase.NewCreateAuthor(a.authors),
		Genres:       usecase.NewGetGenres(a.genres),
		CreateGenre:  usecase.NewCreateGenre(a.genres),
		Statuses:     usecase.NewGetReadStatuses(statuses.NewRepository()),
	}
}

func (a *testApp) quoteFormDeps() QuoteFormDeps {
	return QuoteFormDeps{
		Quote:  usecase.NewGetQuote(a.quotes),
		Search: usecase.NewSearchBooksForQuote(a.books),
		Create: usecase.NewCreateQuote(a.quotes),
		Update: usecase.NewUpdateQuote(a.quotes),
	}
}

func (a *testApp) saveBook(t *testing.T, title string, read time.Time, status models.ReadStatus) uint {
	id, err := a.books.Save(context.Background(), models.BookInput{Title: title, ReadDate: read, Status: status})
	require.NoError(t, err)
	return id
}

func listTitles(state ListState[models.Book]) []string {
	show, ok := state.(ShowList[models.Book])
	if !ok {
		return nil
	}
	out := make([]string, len(show.Items))
	for i, b := range show.Items {
		out[i] = b.Title
	}
	return out
}

func isShowList[T any](state ListState[T]) bool {
	_, ok := state.(ShowList[T])
	return ok
}

func TestBookList_LoadingThenEmpty(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	list := NewBookList(ctx, usecase.NewGetFilteredBooks(app.books))
	defer list.Close()

	state := await(t, list.State(ctx), func(s ListState[models.Book]) bool {
		_, loading := s.(Loading[models.Book])
		return !loading
	})
	assert.Equal(t, Empty[models.Book]{}, state)
}

func TestBookList_SortAndFilter(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	app.saveBook(t, "Beta", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), models.StatusHaveRead)
	app.saveBook(t, "Alpha", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), models.StatusReadNext)
	app.saveBook(t, "Gamma", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), models.StatusHaveRead)

	list := NewBookList(ctx, usecase.NewGetFilteredBooks(app.books))
	defer list.Close()
	states := list.State(ctx)

	state := await(t, states, isShowList[models.Book])
	assert.Equal(t, []string{"Alpha", "Gamma", "Beta"}, listTitles(state))

	list.SortByTitleAsc()
	state = await(t, states, func(s ListState[models.Book]) bool {
		return len(listTitles(s)) == 3 && listTitles(s)[0] == "Alpha" && listTitles(s)[1] == "Beta"
	})
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, listTitles(state))

	list.SortByTitleDesc()
	state = await(t, states, func(s ListState[models.Book]) bool {
		return len(listTitles(s)) == 3 && listTitles(s)[0] == "Gamma"
	})
	assert.Equal(t, []string{"Gamma", "Beta", "Alpha"}, listTitles(state))

	list.SortByReadDateAsc()
	state = await(t, states, func(s ListState[models.Book]) bool {
		return len(listTitles(s)) == 3 && listTitles(s)[0] == "Beta"
	})
	assert.Equal(t, []string{"Beta", "Gamma", "Alpha"}, listTitles(state))

	status := models.StatusReadNext
	list.FilterByStatus(&status)
	state = await(t, states, func(s ListState[models.Book]) bool { return len(listTitles(s)) == 1 })
	assert.Equal(t, []string{"Alpha"}, listTitles(state))
	assert.Equal(t, models.BookSort{Key: models.SortByReadDate, Ascending: true}, list.Snapshot().Filter.Sort)

	list.FilterByStatus(nil)
	await(t, states, func(s ListState[models.Book]) bool { return len(listTitles(s)) == 3 })
}

func TestBookList_FollowsWrites(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	list := NewBookList(ctx, usecase.NewGetFilteredBooks(app.books))
	defer list.Close()
	states := list.State(ctx)
	await(t, states, func(s ListState[models.Book]) bool {
		_, empty := s.(Empty[models.Book])
		return empty
	})

	app.saveBook(t, "Fresh", time.Now(), models.StatusReadingNow)
	state := await(t, states, isShowList[models.Book])
	assert.Equal(t, []string{"Fresh"}, listTitles(state))
}

func TestBookDetail_LoadAndDelete(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	id := app.saveBook(t, "Walden", time.Now(), models.StatusHaveRead)
	_, err := app.quotes.Save(ctx, models.QuoteInput{BookID: id, Page: 3, Text: "Simplify"})
	require.NoError(t, err)

	detail := NewBookDetail(ctx, id,
		usecase.NewGetBook(app.books),
		usecase.NewGetBookQuotes(app.quotes),
		usecase.NewDeleteBook(app.books))
	defer detail.Close()
	states := detail.State(ctx)

	state := await(t, states, func(s ItemState[BookDetailView]) bool {
		loaded, ok := s.(ItemLoaded[BookDetailView])
		return ok && len(loaded.Item.Quotes) == 1
	})
	loaded := state.(ItemLoaded[BookDetailView])
	assert.Equal(t, "Walden", loaded.Item.Book.Title)
	assert.Equal(t, "Simplify", loaded.Item.Quotes[0].Text)

	detail.Delete()
	assert.Equal(t, BookDeleted{ID: id}, receive(t, detail.Events()))

	state = await(t, states, func(s ItemState[BookDetailView]) bool {
		_, failed := s.(ItemFailed[BookDetailView])
		return failed
	})
	assert.True(t, errors.Is(state.(ItemFailed[BookDetailView]).Err, apperr.ErrNotFound))
}

func TestBookDetail_Missing(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	detail := NewBookDetail(ctx, 77,
		usecase.NewGetBook(app.books),
		usecase.NewGetBookQuotes(app.quotes),
		usecase.NewDeleteBook(app.books))
	defer detail.Close()

	state := await(t, detail.State(ctx), func(s ItemState[BookDetailView]) bool {
		_, failed := s.(ItemFailed[BookDetailView])
		return failed
	})
	assert.True(t, errors.Is(state.(ItemFailed[BookDetailView]).Err, apperr.ErrNotFound))

	detail.Delete()
	await(t, detail.State(ctx), func(ItemState[BookDetailView]) bool {
		return detail.Snapshot().ActionErr != nil
	})
	assert.True(t, errors.Is(detail.Snapshot().ActionErr, apperr.ErrDeleteFailed))
}

func TestBookForm_TitleValidatedOnceTouched(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	form := NewBookForm(ctx, 0, app.bookFormDeps())
	defer form.Close()
	states := form.State(ctx)

	view := <-states
	assert.Empty(t, view.Errors, "untouched fields are not validated")

	form.SetTitle("  ")
	view = await(t, states, func(v BookFormView) bool { return v.Touched[FieldTitle] })
	assert.Equal(t, ErrTitleRequired, view.Errors[FieldTitle])

	form.SetTitle("Dune")
	view = await(t, states, func(v BookFormView) bool { return v.Title == "Dune" })
	assert.Empty(t, view.Errors)
}

func TestBookForm_SubmitInvalidDoesNotSave(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	form := NewBookForm(ctx, 0, app.bookFormDeps())
	defer form.Close()

	form.Submit()
	assert.True(t, form.Snapshot().Touched[FieldTitle])
	assert.False(t, form.Snapshot().Submitting)

	assert.Empty(t, dbtest.Next(t, app.books.Stream(ctx, models.BookFilter{})))
}

func TestBookForm_CreateAuthorSelectsIt(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	form := NewBookForm(ctx, 0, app.bookFormDeps())
	defer form.Close()

	form.ShowCreateAuthorDialog()
	assert.True(t, form.Snapshot().ShowAuthorDialog)

	form.CreateAuthor("Le Guin", nil)
	assert.Equal(t, AuthorCreated{ID: "Le Guin"}, receive(t, form.Events()))

	snap := form.Snapshot()
	require.NotNil(t, snap.AuthorID)
	assert.Equal(t, "Le Guin", *snap.AuthorID)
	assert.False(t, snap.ShowAuthorDialog)

	view := await(t, form.State(ctx), func(v BookFormView) bool { return len(v.Authors) == 1 })
	assert.Equal(t, "Le Guin", view.Authors[0].Name)

	form.ShowCreateGenreDialog()
	form.CreateGenre("Fantasy")
	assert.Equal(t, GenreCreated{ID: "Fantasy"}, receive(t, form.Events()))
	assert.False(t, form.Snapshot().ShowGenreDialog)
	assert.Equal(t, "Fantasy", *form.Snapshot().GenreID)
}

func TestBookForm_CreateAndEdit(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	form := NewBookForm(ctx, 0, app.bookFormDeps())
	form.SetTitle("Earthsea")
	form.SetRating(4)
	form.SetMemo("gift")
	form.SelectStatus(models.StatusReadingNow)
	form.SetReadDate(time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC))
	form.Submit()

	saved, ok := receive(t, form.Events()).(BookSaved)
	require.True(t, ok)
	form.Close()

	book := await(t, usecase.NewGetBook(app.books).Execute(ctx, saved.ID), func(u observeBook) bool { return u.Err == nil })
	assert.Equal(t, "Earthsea", book.Value.Title)
	assert.Equal(t, 4, book.Value.Rating)
	assert.Equal(t, models.StatusReadingNow, book.Value.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), book.Value.ReadDate)

	edit := NewBookForm(ctx, saved.ID, app.bookFormDeps())
	defer edit.Close()
	view := await(t, edit.State(ctx), func(v BookFormView) bool { return !v.Loading })
	assert.Equal(t, "Earthsea", view.Title)
	assert.Equal(t, "gift", view.Memo)

	edit.SetTitle("A Wizard of Earthsea")
	edit.Submit()
	assert.Equal(t, BookSaved{ID: saved.ID}, receive(t, edit.Events()))

	book = await(t, usecase.NewGetBook(app.books).Execute(ctx, saved.ID), func(u observeBook) bool { return u.Err == nil })
	assert.Equal(t, "A Wizard of Earthsea", book.Value.Title)
	assert.Equal(t, "gift", book.Value.Memo)
}

func TestQuoteForm_ValidationAndSearch(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	app.saveBook(t, "The Hobbit", time.Now(), models.StatusHaveRead)
	app.saveBook(t, "Dracula", time.Now(), models.StatusHaveRead)

	form := NewQuoteForm(ctx, 0, 0, app.quoteFormDeps())
	defer form.Close()
	states := form.State(ctx)

	view := await(t, states, func(v QuoteFormView) bool { return len(v.Books) == 2 })
	assert.Empty(t, view.Errors)

	form.SetText("In a hole in the ground")
	view = await(t, states, func(v QuoteFormView) bool { return v.Touched[FieldQuote] })
	assert.Empty(t, view.Errors, "only touched fields are validated")

	form.SetPage("x")
	view = await(t, states, func(v QuoteFormView) bool { return v.Page == "x" })
	assert.Equal(t, map[Field]error{FieldPage: ErrPageRequired}, view.Errors)

	form.SetQuery("hob")
	view = await(t, states, func(v QuoteFormView) bool { return len(v.Books) == 1 })
	assert.Equal(t, "The Hobbit", view.Books[0].Title)

	form.Submit()
	view = await(t, states, func(v QuoteFormView) bool { return v.Touched[FieldBook] })
	assert.Equal(t, ErrBookRequired, view.Errors[FieldBook])
	assert.Equal(t, ErrPageRequired, view.Errors[FieldPage])
	assert.NotContains(t, view.Errors, FieldQuote)

	form.SelectBook(view.Books[0])
	form.SetPage("12")
	form.Submit()
	saved := receive(t, form.Events())

	quote := await(t, usecase.NewGetQuote(app.quotes).Execute(ctx, saved.ID), func(u observeQuote) bool { return u.Err == nil })
	assert.Equal(t, 12, quote.Value.Page)
	assert.Equal(t, "The Hobbit", quote.Value.BookTitle)
	assert.Equal(t, "In a hole in the ground", quote.Value.Text)
}

func TestQuoteForm_EditExisting(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	bookID := app.saveBook(t, "Dracula", time.Now(), models.StatusHaveRead)
	id, err := app.quotes.Save(ctx, models.QuoteInput{BookID: bookID, Page: 5, Text: "Listen to them"})
	require.NoError(t, err)

	form := NewQuoteForm(ctx, id, 0, app.quoteFormDeps())
	defer form.Close()

	view := await(t, form.State(ctx), func(v QuoteFormView) bool { return !v.Loading })
	assert.Equal(t, "5", view.Page)
	assert.Equal(t, bookID, view.BookID)

	form.SetThought("creepy")
	form.Submit()
	assert.Equal(t, QuoteSaved{ID: id}, receive(t, form.Events()))

	quote := await(t, usecase.NewGetQuote(app.quotes).Execute(ctx, id), func(u observeQuote) bool { return u.Err == nil })
	assert.Equal(t, "creepy", quote.Value.Thought)
}

func TestQuoteForm_UnknownBookFailsToSave(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	form := NewQuoteForm(ctx, 0, 9999, app.quoteFormDeps())
	defer form.Close()
	states := form.State(ctx)

	form.SetText("Nobody wrote this")
	form.SetPage("1")
	form.Submit()

	view := await(t, states, func(v QuoteFormView) bool { return v.Err != nil })
	assert.True(t, errors.Is(view.Err, apperr.ErrCreateFailed))
	assert.False(t, view.Submitting)
	assert.Zero(t, view.ID)

	select {
	case ev := <-form.Events():
		t.Fatalf("unexpected event %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Empty(t, dbtest.Next(t, app.quotes.Stream(ctx)))
}

func TestQuoteForm_PageTooLarge(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	bookID := app.saveBook(t, "Ulysses", time.Now(), models.StatusHaveRead)

	form := NewQuoteForm(ctx, 0, bookID, app.quoteFormDeps())
	defer form.Close()
	states := form.State(ctx)

	form.SetText("yes")
	form.SetPage("99999999999999999999")
	form.Submit()

	view := await(t, states, func(v QuoteFormView) bool { return v.Touched[FieldBook] })
	assert.Equal(t, ErrPageTooLarge, view.Errors[FieldPage])
	assert.False(t, form.Snapshot().Submitting)

	form.SetPage("x")
	view = await(t, states, func(v QuoteFormView) bool { return v.Page == "x" })
	assert.Equal(t, ErrPageRequired, view.Errors[FieldPage])
}

// flakySearch fails once, then returns books after next is closed.
type flakySearch struct {
	books []models.BookForQuote
	next  chan struct{}
}

func (f *flakySearch) Execute(ctx context.Context, _ string) <-chan observe.Update[[]models.BookForQuote] {
	out := make(chan observe.Update[[]models.BookForQuote])
	go func() {
		defer close(out)
		updates := []observe.Update[[]models.BookForQuote]{
			{Err: apperr.Unknown(errors.New("locked"), "search books")},
			{Value: f.books},
		}
		for i, u := range updates {
			if i > 0 {
				select {
				case <-f.next:
				case <-ctx.Done():
					return
				}
			}
			select {
			case out <- u:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func TestQuoteForm_SearchRecoversFromError(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	search := &flakySearch{
		books: []models.BookForQuote{{ID: 1, Title: "Dune", DisplayTitle: "Dune"}},
		next:  make(chan struct{}),
	}
	deps := app.quoteFormDeps()
	deps.Search = search

	form := NewQuoteForm(ctx, 0, 0, deps)
	defer form.Close()
	states := form.State(ctx)

	view := await(t, states, func(v QuoteFormView) bool { return v.SearchErr != nil })
	assert.True(t, errors.Is(view.SearchErr, apperr.ErrUnknown))
	assert.NoError(t, view.Err)

	close(search.next)
	view = await(t, states, func(v QuoteFormView) bool { return len(v.Books) == 1 })
	assert.NoError(t, view.SearchErr)
}

func isShowView[T any](v ListView[T]) bool {
	return isShowList(v.List)
}

func TestQuoteList(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	first := app.saveBook(t, "First", time.Now(), models.StatusHaveRead)
	second := app.saveBook(t, "Second", time.Now(), models.StatusHaveRead)
	_, err := app.quotes.Save(ctx, models.QuoteInput{BookID: first, Page: 1, Text: "one"})
	require.NoError(t, err)
	otherID, err := app.quotes.Save(ctx, models.QuoteInput{BookID: second, Page: 1, Text: "two"})
	require.NoError(t, err)

	all := NewQuoteList(ctx, usecase.NewGetQuotes(app.quotes), usecase.NewGetBookQuotes(app.quotes), usecase.NewDeleteQuote(app.quotes), 0)
	defer all.Close()
	states := all.State(ctx)
	await(t, states, func(v ListView[models.Quote]) bool {
		show, ok := v.List.(ShowList[models.Quote])
		return ok && len(show.Items) == 2
	})

	one := NewQuoteList(ctx, usecase.NewGetQuotes(app.quotes), usecase.NewGetBookQuotes(app.quotes), usecase.NewDeleteQuote(app.quotes), second)
	defer one.Close()
	view := await(t, one.State(ctx), isShowView[models.Quote])
	assert.Equal(t, "two", view.List.(ShowList[models.Quote]).Items[0].Text)

	all.Delete(otherID)
	view = await(t, states, func(v ListView[models.Quote]) bool {
		show, ok := v.List.(ShowList[models.Quote])
		return ok && len(show.Items) == 1
	})
	assert.NoError(t, view.Err)
}

func TestQuoteList_FailedDeleteKeepsList(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	id := app.saveBook(t, "Only", time.Now(), models.StatusHaveRead)
	_, err := app.quotes.Save(ctx, models.QuoteInput{BookID: id, Page: 1, Text: "kept"})
	require.NoError(t, err)

	list := NewQuoteList(ctx, usecase.NewGetQuotes(app.quotes), usecase.NewGetBookQuotes(app.quotes), usecase.NewDeleteQuote(app.quotes), 0)
	defer list.Close()
	states := list.State(ctx)
	await(t, states, isShowView[models.Quote])

	list.Delete(9999)
	view := await(t, states, func(v ListView[models.Quote]) bool { return v.Err != nil })
	assert.True(t, errors.Is(view.Err, apperr.ErrDeleteFailed))
	require.True(t, isShowList(view.List))
	assert.Equal(t, "kept", view.List.(ShowList[models.Quote]).Items[0].Text)
}

func TestAuthorAndGenreLists_ToggleFavourite(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	_, err := app.authors.Save(ctx, models.AuthorInput{Name: "Borges"})
	require.NoError(t, err)
	_, err = app.genres.Save(ctx, models.GenreInput{Name: "Essays"})
	require.NoError(t, err)

	authorList := NewAuthorList(ctx, usecase.NewGetAuthors(app.authors), usecase.NewSetAuthorFavourite(app.authors))
	defer authorList.Close()
	authorStates := authorList.State(ctx)
	await(t, authorStates, isShowView[models.Author])

	authorList.ToggleFavourite("Borges")
	view := await(t, authorStates, func(v ListView[models.Author]) bool {
		show, ok := v.List.(ShowList[models.Author])
		return ok && show.Items[0].IsFavourite
	})
	assert.Equal(t, "Borges", view.List.(ShowList[models.Author]).Items[0].Name)

	authorList.ToggleFavourite("Borges")
	await(t, authorStates, func(v ListView[models.Author]) bool {
		show, ok := v.List.(ShowList[models.Author])
		return ok && !show.Items[0].IsFavourite
	})

	genreList := NewGenreList(ctx, usecase.NewGetGenres(app.genres), usecase.NewSetGenreFavourite(app.genres))
	defer genreList.Close()
	genreStates := genreList.State(ctx)
	await(t, genreStates, isShowView[models.Genre])

	genreList.ToggleFavourite("Essays")
	await(t, genreStates, func(v ListView[models.Genre]) bool {
		show, ok := v.List.(ShowList[models.Genre])
		return ok && show.Items[0].IsFavourite
	})
}

// failingFavourites rejects every favourite toggle.
type failingFavourites struct{}

func (failingFavourites) Execute(context.Context, string, bool) error {
	return apperr.UpdateFailed(errors.New("read-only"), "author favourite")
}

func TestAuthorList_FailedToggleSurfacesOnState(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	_, err := app.authors.Save(ctx, models.AuthorInput{Name: "Borges"})
	require.NoError(t, err)

	list := NewAuthorList(ctx, usecase.NewGetAuthors(app.authors), failingFavourites{})
	defer list.Close()
	states := list.State(ctx)
	await(t, states, isShowView[models.Author])

	list.ToggleFavourite("Borges")
	view := await(t, states, func(v ListView[models.Author]) bool { return v.Err != nil })
	assert.True(t, errors.Is(view.Err, apperr.ErrUpdateFailed))
	show, ok := view.List.(ShowList[models.Author])
	require.True(t, ok)
	assert.False(t, show.Items[0].IsFavourite)
}

// brokenStream emits a single load error.
func brokenStream[T any](err error) func(context.Context) <-chan observe.Update[T] {
	return func(context.Context) <-chan observe.Update[T] {
		ch := make(chan observe.Update[T], 1)
		ch <- observe.Update[T]{Err: err}
		close(ch)
		return ch
	}
}

type brokenGenres struct{ err error }

func (g brokenGenres) Execute(ctx context.Context) <-chan observe.Update[[]models.Genre] {
	return brokenStream[[]models.Genre](g.err)(ctx)
}

func TestGenreList_LoadErrorIsFailed(t *testing.T) {
	ctx := context.Background()
	loadErr := apperr.Unknown(errors.New("disk gone"), "list genres")

	list := NewGenreList(ctx, brokenGenres{err: loadErr}, failingFavourites{})
	defer list.Close()

	view := await(t, list.State(ctx), func(v ListView[models.Genre]) bool {
		_, failed := v.List.(Failed[models.Genre])
		return failed
	})
	assert.Equal(t, Failed[models.Genre]{Err: loadErr}, view.List)
	assert.Equal(t, "failed", Kind[models.Genre](view.List))
}

type brokenBookQuotes struct{ err error }

func (q brokenBookQuotes) Execute(ctx context.Context, _ uint) <-chan observe.Update[[]models.Quote] {
	return brokenStream[[]models.Quote](q.err)(ctx)
}

func TestBookDetail_QuoteLoadErrorIsReported(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()
	id := app.saveBook(t, "Walden", time.Now(), models.StatusHaveRead)
	_, err := app.quotes.Save(ctx, models.QuoteInput{BookID: id, Page: 3, Text: "Simplify"})
	require.NoError(t, err)
	loadErr := apperr.Unknown(errors.New("disk gone"), "list quotes")

	detail := NewBookDetail(ctx, id,
		usecase.NewGetBook(app.books),
		brokenBookQuotes{err: loadErr},
		usecase.NewDeleteBook(app.books))
	defer detail.Close()

	state := await(t, detail.State(ctx), func(s ItemState[BookDetailView]) bool {
		loaded, ok := s.(ItemLoaded[BookDetailView])
		return ok && loaded.Item.QuotesErr != nil
	})
	view := state.(ItemLoaded[BookDetailView]).Item
	assert.Equal(t, loadErr, view.QuotesErr)
	require.Len(t, view.Quotes, 1, "falls back to the quotes loaded with the book")
	assert.False(t, detail.Snapshot().QuotesLoading)
}

type (
	observeBook  = observe.Update[models.Book]
	observeQuote = observe.Update[models.Quote]
)
