package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/dispatch"
	"github.com/mrlokans/bookshelf/internal/observe"
)

// Read runs fn on the dispatcher with a session bound to ctx.
func Read[T any](ctx context.Context, d *Database, fn func(tx *gorm.DB) (T, error)) (T, error) {
	return dispatch.Do(ctx, d.Dispatcher, func(ctx context.Context) (T, error) {
		return fn(d.DB.WithContext(ctx))
	})
}

// Write runs fn on the dispatcher and, once it succeeds, invalidates tables.
// A cancelled ctx aborts a statement still in flight, but a committed write
// is always reported as a success and always notifies.
func (d *Database) Write(ctx context.Context, fn func(tx *gorm.DB) error, tables ...observe.Table) error {
	return dispatch.Exec(ctx, d.Dispatcher, func(ctx context.Context) error {
		if err := fn(d.DB.WithContext(ctx)); err != nil {
			return err
		}
		d.Changes.Notify(tables...)
		return nil
	})
}

// Observe streams the result of fn, re-reading after every change to tables.
func Observe[T any](ctx context.Context, d *Database, fn func(tx *gorm.DB) (T, error), tables ...observe.Table) <-chan observe.Update[T] {
	return observe.Query(ctx, d.Changes, func(ctx context.Context) (T, error) {
		return Read(ctx, d, fn)
	}, tables...)
}
