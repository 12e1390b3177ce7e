package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/dispatch"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/observe"
)

//go:embed seed.sql
var seedScript string

// connectionParams enable foreign keys on every pooled connection and make
// concurrent readers wait for the single writer instead of failing.
const connectionParams = "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"

// Options tune how the database is opened.
type Options struct {
	// Seed runs the embedded seed script when the database file is created.
	Seed bool
	// LogLevel is the gorm SQL log level.
	LogLevel logger.LogLevel
	// Workers bounds concurrent storage calls, see dispatch.New.
	Workers int
}

// DefaultOptions seeds new databases and logs SQL warnings only.
func DefaultOptions() Options {
	return Options{
		Seed:     true,
		LogLevel: logger.Warn,
		Workers:  dispatch.DefaultWorkers,
	}
}

// Database bundles the gorm connection with the change notifier and the
// background dispatcher every repository shares.
type Database struct {
	DB         *gorm.DB
	Changes    *observe.Notifier
	Dispatcher *dispatch.Dispatcher
}

func NewDatabase(dbPath string, opts Options) (*Database, error) {
	created := isNewDatabase(dbPath)

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Authors and genres first: books reference them, quotes reference books.
	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.Quote{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{
		DB:         db,
		Changes:    observe.NewNotifier(),
		Dispatcher: dispatch.New(opts.Workers),
	}

	if created && opts.Seed {
		if err := database.seed(); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
		log.Printf("Seeded new database at %s", dbPath)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Stats holds row counts per table.
type Stats struct {
	Books   int64 `json:"books"`
	Authors int64 `json:"authors"`
	Genres  int64 `json:"genres"`
	Quotes  int64 `json:"quotes"`
}

// Counts returns row counts for every table.
func (d *Database) Counts(ctx context.Context) (Stats, error) {
	return Read(ctx, d, func(tx *gorm.DB) (Stats, error) {
		var stats Stats
		counts := []struct {
			model any
			dest  *int64
		}{
			{&entities.Book{}, &stats.Books},
			{&entities.Author{}, &stats.Authors},
			{&entities.Genre{}, &stats.Genres},
			{&entities.Quote{}, &stats.Quotes},
		}
		for _, c := range counts {
			if err := tx.Model(c.model).Count(c.dest).Error; err != nil {
				return Stats{}, err
			}
		}
		return stats, nil
	})
}

func (d *Database) seed() error {
	if strings.TrimSpace(seedScript) == "" {
		return nil
	}
	if err := d.DB.Exec(seedScript).Error; err != nil {
		return err
	}
	d.Changes.Notify(observe.TableAuthors, observe.TableGenres, observe.TableBooks, observe.TableQuotes)
	return nil
}

func dsn(dbPath string) string {
	if strings.Contains(dbPath, "?") {
		return dbPath + "&" + connectionParams
	}
	return dbPath + "?" + connectionParams
}

func isNewDatabase(dbPath string) bool {
	path := strings.TrimPrefix(dbPath, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") {
		return true
	}
	_, err := os.Stat(path)
	return errors.Is(err, os.ErrNotExist)
}
