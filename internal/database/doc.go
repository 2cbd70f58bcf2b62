// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, source seeding
//	├── schema.go        # Soft-delete tables and join relations
//	├── books/           # Books and highlights
//	├── tags/            # Book tags
//	└── trash/           # Listing, counting and purging soft-deleted rows
//
// # Soft Delete
//
// Books, highlights and tags are never removed by the request path. Deleting
// sets a boolean flag and every read goes through the softdelete scopes, which
// are built from the Schema declared at startup:
//
//	db, err := database.NewDatabase("./shelf.db", logger.Warn)
//
//	booksRepo := books.NewRepository(db.DB, db.Schema)
//	tagsRepo := tags.NewRepository(db.DB, db.Schema)
//	trashRepo := trash.NewRepository(db.DB, db.Schema)
//
// Rows only leave the database through trash.Repository.Purge.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with *gorm.DB and *database.Schema fields
//  3. Add NewRepository(db *gorm.DB, schema *database.Schema) constructor
//  4. Register soft-delete models in NewSchema
package database
