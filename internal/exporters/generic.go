package exporters

import "github.com/mrlokans/bookshelf/internal/models"

type BookExporter interface {
	Export(books []models.Book) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed  int `json:"books_processed"`
	QuotesProcessed int `json:"quotes_processed"`
	BooksFailed     int `json:"books_failed"`
}
