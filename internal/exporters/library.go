package exporters

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

// BooksLister streams books; usecase.GetFilteredBooks satisfies it.
type BooksLister interface {
	Execute(ctx context.Context, filter models.BookFilter) <-chan observe.Update[[]models.Book]
}

// ExportLibrary writes every book, ordered by title, to dir. It is shared by
// the export task, the scheduled export and the CLI.
func ExportLibrary(ctx context.Context, books BooksLister, dir string) (ExportResult, error) {
	if dir == "" {
		return ExportResult{}, fmt.Errorf("export directory not configured")
	}

	filter := models.BookFilter{Sort: models.BookSort{Key: models.SortByTitle, Ascending: true}}
	all, err := observe.Get(ctx, func(ctx context.Context) <-chan observe.Update[[]models.Book] {
		return books.Execute(ctx, filter)
	})
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to load books: %w", err)
	}

	return NewMarkdownExporter(dir).Export(all)
}
