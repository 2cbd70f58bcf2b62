// Package books provides database operations for books and highlights.
//
// Every read goes through the softdelete scopes, so books and highlights in
// the trash are invisible here. A highlight whose book is in the trash is
// hidden as well: highlight reads inner-join the active books.
//
// # Usage
//
//	repo := books.NewRepository(db.DB, db.Schema)
//	book, err := repo.GetBookByID(123)
package books

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/shelf/internal/database"
	"github.com/mrlokans/shelf/internal/entities"
	"github.com/mrlokans/shelf/softdelete"
)

// Repository handles all book and highlight database operations.
type Repository struct {
	db     *gorm.DB
	schema *database.Schema
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB, schema *database.Schema) *Repository {
	return &Repository{db: db, schema: schema}
}

// CreateBook inserts a book together with its highlights. An unset SourceID
// is resolved from Source.Name when given.
func (r *Repository) CreateBook(book *entities.Book) error {
	if book.SourceID == 0 && book.Source.Name != "" {
		var source entities.Source
		if err := r.db.Where("name = ?", book.Source.Name).First(&source).Error; err != nil {
			return fmt.Errorf("unknown source %q: %w", book.Source.Name, err)
		}
		book.SourceID = source.ID
	}

	if err := r.db.Omit("Source").Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	log.Printf("Created book %d: %s (%d highlights)", book.ID, book.Title, len(book.Highlights))
	return nil
}

// GetBookByID retrieves an active book with its active highlights and tags.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Highlights", func(db *gorm.DB) *gorm.DB {
		return db.Scopes(softdelete.SoftDeleted(r.schema.Highlights)).
			Order("location_value ASC, highlighted_at ASC")
	}).Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Scopes(softdelete.SoftDeleted(r.schema.Tags)).Order("name ASC")
	}).Preload("Source").
		Scopes(softdelete.SoftFind(r.schema.Books, id)).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks retrieves active books ordered by title.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Source").
		Scopes(softdelete.SoftDeleted(r.schema.Books)).
		Order("title ASC").Find(&books).Error
	return books, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchBooks matches the query against title and author, case-insensitively.
// The query is matched literally: % and _ are not wildcards.
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	var books []entities.Book
	err := r.db.Preload("Source").
		Scopes(softdelete.SoftFilter(r.schema.Books,
			`LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(author) LIKE LOWER(?) ESCAPE '\'`,
			pattern, pattern)).
		Order("title ASC").Find(&books).Error
	return books, err
}

// GetBookOverview lists active books with their source and the number of
// active highlights and tags. Books without either are listed with zero counts.
func (r *Repository) GetBookOverview() ([]entities.BookSummary, error) {
	var summaries []entities.BookSummary
	err := r.db.Model(&entities.Book{}).
		Scopes(
			softdelete.SoftDeleted(r.schema.Books),
			softdelete.SoftLeftJoin(r.schema.BookHighlights),
			softdelete.SoftLeftJoin(r.schema.BookTags),
			softdelete.Join(r.schema.BookSource, softdelete.LeftJoin),
		).
		Select("books.id, books.title, books.author, " +
			"COALESCE(sources.display_name, '') AS source_name, " +
			"COUNT(DISTINCT highlights.id) AS highlight_count, " +
			"COUNT(DISTINCT tags.id) AS tag_count").
		Group("books.id").
		Order("books.title ASC").
		Scan(&summaries).Error
	return summaries, err
}

// DeleteBook moves a book to the trash. Its highlights and tags keep their
// own flags and come back with the book on restore.
func (r *Repository) DeleteBook(id uint) error {
	return r.setBookDeleted(id, true)
}

// RestoreBook takes a book out of the trash.
func (r *Repository) RestoreBook(id uint) error {
	return r.setBookDeleted(id, false)
}

func (r *Repository) setBookDeleted(id uint, deleted bool) error {
	update := softdelete.Restore
	if deleted {
		update = softdelete.MarkDeleted
	}
	n, err := update(r.db, r.schema.Books, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("book %d: %w", id, gorm.ErrRecordNotFound)
	}
	if deleted {
		log.Printf("Moved book %d to trash", id)
	} else {
		log.Printf("Restored book %d from trash", id)
	}
	return nil
}

// IsNotFound reports whether err means the row is absent or in the trash.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
