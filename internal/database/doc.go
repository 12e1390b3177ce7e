// Package database provides the data access layer for the reading log.
//
// # Architecture
//
// The database layer is organized into one sub-package per aggregate:
//
//	database/
//	├── database.go      # Connection setup, migrations, seeding
//	├── seed.sql         # Run once when the database file is created
//	├── authors/         # Author CRUD and favourites
//	├── genres/          # Genre CRUD and favourites
//	├── books/           # Book CRUD, sorted lists, books-for-quote search
//	├── quotes/          # Quote CRUD
//	└── statuses/        # The read status enumeration
//
// # Using Sub-packages
//
// Each sub-package provides a Repository built from the shared Database:
//
//	db, err := database.NewDatabase("./bookshelf.db", database.DefaultOptions())
//
//	booksRepo := books.NewRepository(db)
//	quotesRepo := quotes.NewRepository(db)
//
//	id, err := booksRepo.Save(ctx, input)
//	for update := range booksRepo.StreamByID(ctx, id) {
//	    ...
//	}
//
// # Streams and Dispatch
//
// Reads are exposed as streams (see internal/observe) that re-emit after every
// write to a table they read. Every repository write notifies Database.Changes
// once it succeeds. Storage work runs on Database.Dispatcher, never on the
// caller's goroutine.
//
// # Adding a New Aggregate
//
//  1. Create a new sub-package: internal/database/<aggregate>/
//  2. Define a Repository struct holding *database.Database
//  3. Add NewRepository(db *database.Database) constructor
//  4. Run every query through dispatch.Do and notify Changes after writes
//  5. Add compile-time interface checks where the repository satisfies a
//     consumer interface: var _ usecase.SomeStore = (*Repository)(nil)
package database
