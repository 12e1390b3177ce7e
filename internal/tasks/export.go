package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/exporters"
)

// ExportTask writes the whole library as markdown notes.
type ExportTask struct {
	// Dir overrides the configured export directory.
	Dir string `json:"dir,omitempty"`
}

func (t ExportTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "export_markdown",
		MaxAttempts: 2,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportProcessor exports to the task's directory, or defaultDir when the
// task names none.
func ExportProcessor(books exporters.BooksLister, defaultDir string) backlite.QueueProcessor[ExportTask] {
	return func(ctx context.Context, task ExportTask) error {
		dir := task.Dir
		if dir == "" {
			dir = defaultDir
		}

		result, err := exporters.ExportLibrary(ctx, books, dir)
		if err != nil {
			return fmt.Errorf("export to %s: %w", dir, err)
		}

		log.Printf("[TASK] Exported %d books, %d quotes to %s (%d failed)",
			result.BooksProcessed, result.QuotesProcessed, dir, result.BooksFailed)
		return nil
	}
}

func NewExportQueue(books exporters.BooksLister, defaultDir string) backlite.Queue {
	return backlite.NewQueue(ExportProcessor(books, defaultDir))
}
