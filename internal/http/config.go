package http

import (
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/genres"
	"github.com/mrlokans/bookshelf/internal/database/quotes"
	"github.com/mrlokans/bookshelf/internal/database/statuses"
	"github.com/mrlokans/bookshelf/internal/usecase"
)

// UseCases bundles the operations the API exposes.
type UseCases struct {
	GetAuthors         *usecase.GetAuthors
	CreateAuthor       *usecase.CreateAuthor
	RenameAuthor       *usecase.RenameAuthor
	SetAuthorFavourite *usecase.SetAuthorFavourite

	GetGenres         *usecase.GetGenres
	CreateGenre       *usecase.CreateGenre
	RenameGenre       *usecase.RenameGenre
	SetGenreFavourite *usecase.SetGenreFavourite

	GetFilteredBooks    *usecase.GetFilteredBooks
	GetBook             *usecase.GetBook
	CreateBook          *usecase.CreateBook
	UpdateBook          *usecase.UpdateBook
	DeleteBook          *usecase.DeleteBook
	SearchBooksForQuote *usecase.SearchBooksForQuote

	GetQuotes     *usecase.GetQuotes
	GetBookQuotes *usecase.GetBookQuotes
	GetQuote      *usecase.GetQuote
	CreateQuote   *usecase.CreateQuote
	UpdateQuote   *usecase.UpdateQuote
	DeleteQuote   *usecase.DeleteQuote

	GetReadStatuses *usecase.GetReadStatuses
}

// NewUseCases wires every use case to the repositories over db.
func NewUseCases(db *database.Database) UseCases {
	authorRepo := authors.NewRepository(db)
	genreRepo := genres.NewRepository(db)
	bookRepo := books.NewRepository(db)
	quoteRepo := quotes.NewRepository(db)

	return UseCases{
		GetAuthors:         usecase.NewGetAuthors(authorRepo),
		CreateAuthor:       usecase.NewCreateAuthor(authorRepo),
		RenameAuthor:       usecase.NewRenameAuthor(authorRepo),
		SetAuthorFavourite: usecase.NewSetAuthorFavourite(authorRepo),

		GetGenres:         usecase.NewGetGenres(genreRepo),
		CreateGenre:       usecase.NewCreateGenre(genreRepo),
		RenameGenre:       usecase.NewRenameGenre(genreRepo),
		SetGenreFavourite: usecase.NewSetGenreFavourite(genreRepo),

		GetFilteredBooks:    usecase.NewGetFilteredBooks(bookRepo),
		GetBook:             usecase.NewGetBook(bookRepo),
		CreateBook:          usecase.NewCreateBook(bookRepo),
		UpdateBook:          usecase.NewUpdateBook(bookRepo),
		DeleteBook:          usecase.NewDeleteBook(bookRepo),
		SearchBooksForQuote: usecase.NewSearchBooksForQuote(bookRepo),

		GetQuotes:     usecase.NewGetQuotes(quoteRepo),
		GetBookQuotes: usecase.NewGetBookQuotes(quoteRepo),
		GetQuote:      usecase.NewGetQuote(quoteRepo),
		CreateQuote:   usecase.NewCreateQuote(quoteRepo),
		UpdateQuote:   usecase.NewUpdateQuote(quoteRepo),
		DeleteQuote:   usecase.NewDeleteQuote(quoteRepo),

		GetReadStatuses: usecase.NewGetReadStatuses(statuses.NewRepository()),
	}
}

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Database *database.Database
	UseCases UseCases

	// Export queue (optional). Without it exports run inline.
	ExportQueue ExportQueue
	ExportDir   string

	// Application info
	Version string
}
