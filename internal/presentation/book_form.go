package presentation

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/mapping"
	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

// BookFormEvent is one of AuthorCreated, GenreCreated or BookSaved.
type BookFormEvent interface {
	isBookFormEvent()
}

type AuthorCreated struct {
	ID string
}

type GenreCreated struct {
	ID string
}

type BookSaved struct {
	ID uint
}

func (AuthorCreated) isBookFormEvent() {}
func (GenreCreated) isBookFormEvent()  {}
func (BookSaved) isBookFormEvent()     {}

type BookFormState struct {
	// ID is the book being edited, zero for a new book.
	ID uint

	Title    string
	ReadDate time.Time
	Memo     string
	Thought  string
	Rating   int
	AuthorID *string
	GenreID  *string
	Status   models.ReadStatus

	Authors  []models.Author
	Genres   []models.Genre
	Statuses []models.BookReadStatus

	ShowAuthorDialog bool
	ShowGenreDialog  bool

	Touched    Touched
	Loading    bool
	Submitting bool
	Err        error
}

// BookFormView is the snapshot with the validation errors of touched fields.
type BookFormView struct {
	BookFormState
	Errors map[Field]error
}

// BookFormDeps are the use cases the book form calls.
type BookFormDeps struct {
	Book         BookGetter
	Create       BookCreator
	Update       BookUpdater
	Authors      AuthorsGetter
	CreateAuthor AuthorCreator
	Genres       GenresGetter
	CreateGenre  GenreCreator
	Statuses     StatusesGetter
}

// BookForm creates a new book or edits an existing one.
type BookForm struct {
	scope  *Scope
	store  *Store[BookFormState]
	events *Events[BookFormEvent]
	deps   BookFormDeps
}

// NewBookForm opens the form. A non-zero id loads that book for editing.
func NewBookForm(ctx context.Context, id uint, deps BookFormDeps) *BookForm {
	f := &BookForm{
		scope: NewScope(ctx),
		store: NewStore(BookFormState{
			ID:       id,
			ReadDate: mapping.DateOnly(time.Now()),
			Status:   models.StatusHaveRead,
			Touched:  Touched{},
			Loading:  id != 0,
		}),
		events: NewEvents[BookFormEvent](0),
		deps:   deps,
	}

	f.scope.Launch(func(ctx context.Context) {
		for u := range deps.Authors.Execute(ctx) {
			f.apply("authors", u.Err, func(s BookFormState) BookFormState {
				s.Authors = u.Value
				return s
			})
		}
	})
	f.scope.Launch(func(ctx context.Context) {
		for u := range deps.Genres.Execute(ctx) {
			f.apply("genres", u.Err, func(s BookFormState) BookFormState {
				s.Genres = u.Value
				return s
			})
		}
	})
	f.scope.Launch(func(ctx context.Context) {
		for u := range deps.Statuses.Execute(ctx) {
			f.apply("statuses", u.Err, func(s BookFormState) BookFormState {
				s.Statuses = u.Value
				return s
			})
		}
	})

	if id != 0 {
		f.scope.Launch(func(ctx context.Context) {
			book, err := observe.Get(ctx, func(ctx context.Context) <-chan observe.Update[models.Book] {
				return deps.Book.Execute(ctx, id)
			})
			if ctx.Err() != nil {
				return
			}
			f.apply("book", err, func(s BookFormState) BookFormState {
				return fillFromBook(s, book)
			})
			f.store.Update(func(s BookFormState) BookFormState {
				s.Loading = false
				return s
			})
		})
	}

	return f
}

func fillFromBook(s BookFormState, b models.Book) BookFormState {
	s.Title = b.Title
	s.ReadDate = b.ReadDate
	s.Memo = b.Memo
	s.Thought = b.Thought
	s.Rating = b.Rating
	s.Status = b.Status
	s.AuthorID = nil
	if b.Author != nil {
		id := b.Author.ID
		s.AuthorID = &id
	}
	s.GenreID = nil
	if b.Genre != nil {
		id := b.Genre.ID
		s.GenreID = &id
	}
	return s
}

// apply folds a stream emission into the snapshot, recording err instead
// when the load failed.
func (f *BookForm) apply(what string, err error, fn func(BookFormState) BookFormState) {
	if err != nil {
		log.Printf("Book form failed to load %s: %v", what, err)
		f.store.Update(func(s BookFormState) BookFormState {
			s.Err = err
			return s
		})
		return
	}
	f.store.Update(fn)
}

func (f *BookForm) edit(fn func(BookFormState) BookFormState) {
	f.store.Update(fn)
}

func (f *BookForm) SetTitle(title string) {
	f.edit(func(s BookFormState) BookFormState {
		s.Title = title
		s.Touched = s.Touched.With(FieldTitle)
		return s
	})
}

func (f *BookForm) SetReadDate(t time.Time) {
	f.edit(func(s BookFormState) BookFormState {
		s.ReadDate = mapping.DateOnly(t)
		return s
	})
}

func (f *BookForm) SetMemo(memo string) {
	f.edit(func(s BookFormState) BookFormState {
		s.Memo = memo
		return s
	})
}

func (f *BookForm) SetThought(thought string) {
	f.edit(func(s BookFormState) BookFormState {
		s.Thought = thought
		return s
	})
}

func (f *BookForm) SetRating(rating int) {
	f.edit(func(s BookFormState) BookFormState {
		s.Rating = rating
		return s
	})
}

// SelectAuthor sets the author; an empty id clears it.
func (f *BookForm) SelectAuthor(id string) {
	f.edit(func(s BookFormState) BookFormState {
		s.AuthorID = optional(id)
		return s
	})
}

// SelectGenre sets the genre; an empty id clears it.
func (f *BookForm) SelectGenre(id string) {
	f.edit(func(s BookFormState) BookFormState {
		s.GenreID = optional(id)
		return s
	})
}

func (f *BookForm) SelectStatus(status models.ReadStatus) {
	f.edit(func(s BookFormState) BookFormState {
		s.Status = models.ParseReadStatus(string(status))
		return s
	})
}

func (f *BookForm) ShowCreateAuthorDialog() {
	f.edit(func(s BookFormState) BookFormState {
		s.ShowAuthorDialog = true
		return s
	})
}

func (f *BookForm) DismissCreateAuthorDialog() {
	f.edit(func(s BookFormState) BookFormState {
		s.ShowAuthorDialog = false
		return s
	})
}

func (f *BookForm) ShowCreateGenreDialog() {
	f.edit(func(s BookFormState) BookFormState {
		s.ShowGenreDialog = true
		return s
	})
}

func (f *BookForm) DismissCreateGenreDialog() {
	f.edit(func(s BookFormState) BookFormState {
		s.ShowGenreDialog = false
		return s
	})
}

// CreateAuthor saves a new author, selects it and closes the dialog.
func (f *BookForm) CreateAuthor(name string, memo *string) {
	in := models.AuthorInput{Name: strings.TrimSpace(name), Memo: memo}
	if in.Name == "" {
		f.fail(apperr.Validation("author name required"))
		return
	}
	f.scope.Launch(func(ctx context.Context) {
		id, err := f.deps.CreateAuthor.Execute(ctx, in)
		if err != nil {
			log.Printf("Failed to create author %q: %v", in.Name, err)
			f.fail(err)
			return
		}
		f.edit(func(s BookFormState) BookFormState {
			s.AuthorID = &id
			s.ShowAuthorDialog = false
			s.Err = nil
			return s
		})
		f.events.Emit(ctx, AuthorCreated{ID: id})
	})
}

// CreateGenre saves a new genre, selects it and closes the dialog.
func (f *BookForm) CreateGenre(name string) {
	in := models.GenreInput{Name: strings.TrimSpace(name)}
	if in.Name == "" {
		f.fail(apperr.Validation("genre name required"))
		return
	}
	f.scope.Launch(func(ctx context.Context) {
		id, err := f.deps.CreateGenre.Execute(ctx, in)
		if err != nil {
			log.Printf("Failed to create genre %q: %v", in.Name, err)
			f.fail(err)
			return
		}
		f.edit(func(s BookFormState) BookFormState {
			s.GenreID = &id
			s.ShowGenreDialog = false
			s.Err = nil
			return s
		})
		f.events.Emit(ctx, GenreCreated{ID: id})
	})
}

// Submit validates every field and saves the book. BookSaved is emitted on
// success; a failed save is kept in the view's Err.
func (f *BookForm) Submit() {
	var valid bool
	s := f.store.Update(func(s BookFormState) BookFormState {
		s.Touched = s.Touched.With(FieldTitle)
		valid = len(validateBookForm(s)) == 0 && !s.Submitting
		if valid {
			s.Submitting = true
			s.Err = nil
		}
		return s
	})
	if !valid {
		return
	}

	in := models.BookInput{
		Title:    strings.TrimSpace(s.Title),
		ReadDate: s.ReadDate,
		Memo:     s.Memo,
		Thought:  s.Thought,
		Rating:   s.Rating,
		AuthorID: s.AuthorID,
		GenreID:  s.GenreID,
		Status:   s.Status,
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
			log.Printf("Failed to save book %q: %v", in.Title, err)
		}
		f.edit(func(s BookFormState) BookFormState {
			s.Submitting = false
			s.Err = err
			if err == nil {
				s.ID = id
			}
			return s
		})
		if err == nil {
			f.events.Emit(ctx, BookSaved{ID: id})
		}
	})
}

func (f *BookForm) fail(err error) {
	f.edit(func(s BookFormState) BookFormState {
		s.Err = err
		return s
	})
}

func (f *BookForm) Events() <-chan BookFormEvent {
	return f.events.C()
}

func (f *BookForm) Snapshot() BookFormState {
	return f.store.Snapshot()
}

func (f *BookForm) State(ctx context.Context) <-chan BookFormView {
	ctx = f.scope.Bind(ctx)
	return Project(ctx, f.store.Subscribe(ctx), projectBookForm)
}

func projectBookForm(s BookFormState) BookFormView {
	return BookFormView{BookFormState: s, Errors: validateBookForm(s)}
}

func validateBookForm(s BookFormState) map[Field]error {
	return check(s.Touched,
		rule{field: FieldTitle, value: strings.TrimSpace(s.Title), tag: "required", err: ErrTitleRequired},
	)
}

func (f *BookForm) Close() {
	f.scope.Close()
}

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
