package presentation

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

// QuoteSaved is emitted once a quote has been stored.
type QuoteSaved struct {
	ID uint
}

type QuoteFormState struct {
	// ID is the quote being edited, zero for a new quote.
	ID uint

	// Query filters the books offered for the quote.
	Query     string
	Books     []models.BookForQuote
	BookID    uint
	BookTitle string

	Page    string
	Text    string
	Thought string

	Touched    Touched
	Loading    bool
	Submitting bool
	Err        error
	// SearchErr is set while the book search for Query is failing.
	SearchErr error
}

type QuoteFormView struct {
	QuoteFormState
	Errors map[Field]error
}

type QuoteFormDeps struct {
	Quote  QuoteGetter
	Search BooksForQuoteSearcher
	Create QuoteCreator
	Update QuoteUpdater
}

// QuoteForm creates or edits a quote. The book is picked from a list that
// follows the search query as it is typed.
type QuoteForm struct {
	scope  *Scope
	store  *Store[QuoteFormState]
	events *Events[QuoteSaved]
	deps   QuoteFormDeps
	search Slot
}

// NewQuoteForm opens the form. A non-zero id loads that quote for editing;
// otherwise a non-zero bookID preselects the book.
func NewQuoteForm(ctx context.Context, id, bookID uint, deps QuoteFormDeps) *QuoteForm {
	f := &QuoteForm{
		scope: NewScope(ctx),
		store: NewStore(QuoteFormState{
			ID:      id,
			BookID:  bookID,
			Touched: Touched{},
			Loading: id != 0,
		}),
		events: NewEvents[QuoteSaved](0),
		deps:   deps,
	}

	f.searchBooks("")

	if id != 0 {
		f.scope.Launch(func(ctx context.Context) {
			quote, err := observe.Get(ctx, func(ctx context.Context) <-chan observe.Update[models.Quote] {
				return deps.Quote.Execute(ctx, id)
			})
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Printf("Failed to load quote %d: %v", id, err)
			}
			f.store.Update(func(s QuoteFormState) QuoteFormState {
				s.Loading = false
				s.Err = err
				if err == nil {
					s.BookID = quote.BookID
					s.BookTitle = quote.BookTitle
					s.Page = strconv.Itoa(quote.Page)
					s.Text = quote.Text
					s.Thought = quote.Thought
				}
				return s
			})
		})
	}

	return f
}

func (f *QuoteForm) searchBooks(query string) {
	f.scope.Switch(&f.search, func(ctx context.Context) {
		for u := range f.deps.Search.Execute(ctx, query) {
			if u.Err != nil {
				log.Printf("Failed to search books for %q: %v", query, u.Err)
			}
			f.store.Update(func(s QuoteFormState) QuoteFormState {
				if s.Query != query {
					return s
				}
				s.SearchErr = u.Err
				if u.Err != nil {
					return s
				}
				s.Books = u.Value
				// Fill in the title of a preselected book once it shows up.
				if s.BookID != 0 && s.BookTitle == "" {
					for _, b := range u.Value {
						if b.ID == s.BookID {
							s.BookTitle = b.DisplayTitle
						}
					}
				}
				return s
			})
		}
	})
}

// SetQuery changes the book search and resubscribes to its results.
func (f *QuoteForm) SetQuery(query string) {
	var changed bool
	f.store.Update(func(s QuoteFormState) QuoteFormState {
		changed = s.Query != query
		s.Query = query
		return s
	})
	if changed {
		f.searchBooks(query)
	}
}

func (f *QuoteForm) SelectBook(book models.BookForQuote) {
	f.store.Update(func(s QuoteFormState) QuoteFormState {
		s.BookID = book.ID
		s.BookTitle = book.DisplayTitle
		s.Touched = s.Touched.With(FieldBook)
		return s
	})
}

func (f *QuoteForm) SetPage(page string) {
	f.store.Update(func(s QuoteFormState) QuoteFormState {
		s.Page = page
		s.Touched = s.Touched.With(FieldPage)
		return s
	})
}

func (f *QuoteForm) SetText(text string) {
	f.store.Update(func(s QuoteFormState) QuoteFormState {
		s.Text = text
		s.Touched = s.Touched.With(FieldQuote)
		return s
	})
}

func (f *QuoteForm) SetThought(thought string) {
	f.store.Update(func(s QuoteFormState) QuoteFormState {
		s.Thought = thought
		return s
	})
}

// Submit validates every field and saves the quote. QuoteSaved is emitted on
// success; a failed save is kept in the view's Err.
func (f *QuoteForm) Submit() {
	var (
		valid bool
		page  int
	)
	s := f.store.Update(func(s QuoteFormState) QuoteFormState {
		s.Touched = s.Touched.With(FieldBook, FieldPage, FieldQuote)
		if len(validateQuoteForm(s)) > 0 || s.Submitting {
			return s
		}
		p, err := strconv.Atoi(strings.TrimSpace(s.Page))
		if err != nil {
			s.Err = ErrPageTooLarge
			return s
		}
		page, valid = p, true
		s.Submitting = true
		s.Err = nil
		return s
	})
	if !valid {
		return
	}

	in := models.QuoteInput{
		BookID:  s.BookID,
		Page:    page,
		Text:    strings.TrimSpace(s.Text),
		Thought: s.Thought,
	}

	f.scope.Launch(func(ctx context.Context) {
		id := s.ID
		var err error
		if id == 0 {
			id, err = f.deps.Create.Execute(ctx, in)
		} else {
			err = f.deps.Update.Execute(ctx, id, in)
		}
		if err != nil {
			log.Printf("Failed to save quote for book %d: %v", in.BookID, err)
		}
		f.store.Update(func(s QuoteFormState) QuoteFormState {
			s.Submitting = false
			s.Err = err
			if err == nil {
				s.ID = id
			}
			return s
		})
		if err == nil {
			f.events.Emit(ctx, QuoteSaved{ID: id})
		}
	})
}

func (f *QuoteForm) Events() <-chan QuoteSaved {
	return f.events.C()
}

func (f *QuoteForm) Snapshot() QuoteFormState {
	return f.store.Snapshot()
}

func (f *QuoteForm) State(ctx context.Context) <-chan QuoteFormView {
	ctx = f.scope.Bind(ctx)
	return Project(ctx, f.store.Subscribe(ctx), projectQuoteForm)
}

func projectQuoteForm(s QuoteFormState) QuoteFormView {
	return QuoteFormView{QuoteFormState: s, Errors: validateQuoteForm(s)}
}

func validateQuoteForm(s QuoteFormState) map[Field]error {
	return check(s.Touched,
		rule{field: FieldQuote, value: strings.TrimSpace(s.Text), tag: "required", err: ErrQuoteRequired},
		rule{field: FieldPage, value: strings.TrimSpace(s.Page), tag: "required,number", err: ErrPageRequired},
		rule{field: FieldPage, value: strings.TrimSpace(s.Page), tag: "max=9", err: ErrPageTooLarge},
		rule{field: FieldBook, value: s.BookID, tag: "required", err: ErrBookRequired},
	)
}

func (f *QuoteForm) Close() {
	f.scope.Close()
}
