package http

import "github.com/mrlokans/shelf/internal/entities"

// Each controller depends on its own store interface. The database
// repositories satisfy them:
//
//	books.Repository -> BookStore, HighlightStore
//	tags.Repository  -> TagStore
//	trash.Repository -> TrashStore

// BookStore defines database operations for books.
type BookStore interface {
	GetBookByID(id uint) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	SearchBooks(query string) ([]entities.Book, error)
	GetBookOverview() ([]entities.BookSummary, error)
	DeleteBook(id uint) error
	RestoreBook(id uint) error
}

// HighlightStore defines database operations for highlights.
type HighlightStore interface {
	GetHighlightByID(id uint) (*entities.Highlight, error)
	ListHighlights(limit, offset int) ([]entities.HighlightRow, error)
	CountHighlights() (int64, error)
	DeleteHighlight(id uint) error
	RestoreHighlight(id uint) error
}

// TagStore defines database operations for book tags.
type TagStore interface {
	AddTag(bookID uint, name string) (*entities.Tag, error)
	GetTagsForBook(bookID uint) ([]entities.Tag, error)
	RemoveTag(id uint) error
	RestoreTag(id uint) error
}

// TrashStore defines database operations on soft-deleted rows.
type TrashStore interface {
	List() ([]entities.TrashItem, error)
	Stats() ([]entities.TrashStats, error)
	Purge() (int64, error)
}
