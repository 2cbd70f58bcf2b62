package entities

import (
	"time"
)

type LocationType string

const (
	LocationTypePage     LocationType = "page"
	LocationTypeLocation LocationType = "location" // Kindle-style location
	LocationTypePercent  LocationType = "percent"
	LocationTypeNone     LocationType = "none"
)

type Source struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:50" json:"name"`  // e.g., "kindle", "apple_books", "moonreader"
	DisplayName string    `gorm:"size:100" json:"display_name"`     // e.g., "Amazon Kindle", "Apple Books"
	CreatedAt   time.Time `json:"created_at"`
}

// Book, Highlight and Tag are soft-deleted: rows stay in place with their
// flag set until the trash is purged.
type Book struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Title      string      `gorm:"index;size:512" json:"title"`
	Author     string      `gorm:"index;size:256" json:"author"`
	ISBN       string      `gorm:"index;size:20" json:"isbn,omitempty"`
	SourceID   uint        `gorm:"index" json:"source_id"`
	Source     Source      `gorm:"foreignKey:SourceID" json:"source,omitempty"`
	Highlights []Highlight `gorm:"foreignKey:BookID" json:"highlights,omitempty"`
	Tags       []Tag       `gorm:"foreignKey:BookID" json:"tags,omitempty"`
	Deleted    bool        `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type Highlight struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	BookID uint   `gorm:"index" json:"book_id"`
	Text   string `gorm:"type:text" json:"text"`
	Note   string `gorm:"type:text" json:"note,omitempty"`

	// Location information
	LocationType  LocationType `gorm:"size:20;default:'page'" json:"location_type"`
	LocationValue int          `json:"location_value,omitempty"`
	Chapter       string       `gorm:"size:256" json:"chapter,omitempty"`

	HighlightedAt time.Time `json:"highlighted_at,omitempty"` // When user made the highlight

	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tag uses its own column name for the flag.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"index" json:"book_id"`
	Name      string    `gorm:"index;size:100" json:"name"`
	Removed   bool      `gorm:"column:is_removed;not null;default:false" softdelete:"flag" json:"removed"`
	CreatedAt time.Time `json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

func (Source) TableName() string {
	return "sources"
}

// HighlightRow is a highlight joined with its active book.
type HighlightRow struct {
	ID            uint      `json:"id"`
	BookID        uint      `json:"book_id"`
	BookTitle     string    `json:"book_title"`
	BookAuthor    string    `json:"book_author"`
	Text          string    `json:"text"`
	LocationValue int       `json:"location_value,omitempty"`
	HighlightedAt time.Time `json:"highlighted_at,omitempty"`
}

// BookSummary counts the active highlights and tags of an active book.
type BookSummary struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	SourceName     string `json:"source_name,omitempty"`
	HighlightCount int64  `json:"highlight_count"`
	TagCount       int64  `json:"tag_count"`
}

type TrashKind string

const (
	TrashKindBook      TrashKind = "book"
	TrashKindHighlight TrashKind = "highlight"
	TrashKindTag       TrashKind = "tag"
)

// TrashItem is one soft-deleted row as listed in the trash.
type TrashItem struct {
	Kind  TrashKind `json:"kind"`
	ID    uint      `json:"id"`
	Label string    `json:"label"`
}

// TrashStats counts rows per table. Orphaned rows are active but belong to a
// deleted book; a purge removes them along with the deleted rows.
type TrashStats struct {
	Table    string `json:"table"`
	Active   int64  `json:"active"`
	Deleted  int64  `json:"deleted"`
	Orphaned int64  `json:"orphaned"`
}

// Purgeable is the number of rows a purge of this table removes.
func (s TrashStats) Purgeable() int64 {
	return s.Deleted + s.Orphaned
}
