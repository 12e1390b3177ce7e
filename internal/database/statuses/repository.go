// Package statuses exposes the fixed set of read statuses. They are not
// stored in a table, so the stream emits once and closes.
package statuses

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/mapping"
	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// Stream emits every read status in display order.
func (r *Repository) Stream(ctx context.Context) <-chan observe.Update[[]models.BookReadStatus] {
	return observe.Just(ctx, mapping.ReadStatuses())
}
