// Package trash lists, counts and purges soft-deleted rows.
//
// # Usage
//
//	repo := trash.NewRepository(db.DB, db.Schema)
//	items, err := repo.List()
//	purged, err := repo.Purge()
package trash

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/shelf/internal/database"
	"github.com/mrlokans/shelf/internal/entities"
	"github.com/mrlokans/shelf/softdelete"
)

const labelLength = 80

// Repository handles trash database operations.
type Repository struct {
	db     *gorm.DB
	schema *database.Schema
}

// NewRepository creates a new trash repository.
func NewRepository(db *gorm.DB, schema *database.Schema) *Repository {
	return &Repository{db: db, schema: schema}
}

// List returns every soft-deleted book, highlight and tag.
func (r *Repository) List() ([]entities.TrashItem, error) {
	var items []entities.TrashItem

	var books []entities.Book
	if err := r.db.Scopes(softdelete.OnlyDeleted(r.schema.Books)).Order("id ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list deleted books: %w", err)
	}
	for _, b := range books {
		items = append(items, entities.TrashItem{Kind: entities.TrashKindBook, ID: b.ID, Label: b.Title})
	}

	var highlights []entities.Highlight
	if err := r.db.Scopes(softdelete.OnlyDeleted(r.schema.Highlights)).Order("id ASC").Find(&highlights).Error; err != nil {
		return nil, fmt.Errorf("failed to list deleted highlights: %w", err)
	}
	for _, h := range highlights {
		items = append(items, entities.TrashItem{Kind: entities.TrashKindHighlight, ID: h.ID, Label: truncate(h.Text)})
	}

	var tags []entities.Tag
	if err := r.db.Scopes(softdelete.OnlyDeleted(r.schema.Tags)).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list deleted tags: %w", err)
	}
	for _, t := range tags {
		items = append(items, entities.TrashItem{Kind: entities.TrashKindTag, ID: t.ID, Label: t.Name})
	}

	return items, nil
}

// Stats counts active and deleted rows of every soft-delete table, and the
// active highlights and tags of deleted books.
func (r *Repository) Stats() ([]entities.TrashStats, error) {
	orphaned := make(map[string]int64)
	for _, c := range r.children() {
		var n int64
		err := r.ofDeletedBooks(r.db, c).
			Scopes(softdelete.SoftDeleted(c.table)).
			Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count %s of deleted books: %w", c.table.Name, err)
		}
		orphaned[c.table.Name] = n
	}

	tables := r.schema.Registry.Tables()
	stats := make([]entities.TrashStats, 0, len(tables))
	for _, t := range tables {
		active, deleted, err := softdelete.Count(r.db, t)
		if err != nil {
			return nil, err
		}
		stats = append(stats, entities.TrashStats{
			Table:    t.Name,
			Active:   active,
			Deleted:  deleted,
			Orphaned: orphaned[t.Name],
		})
	}
	return stats, nil
}

// Purge permanently removes everything in the trash. Highlights and tags of
// deleted books are flagged first so no orphans are left behind; children are
// removed before their books.
func (r *Repository) Purge() (int64, error) {
	var total int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range r.children() {
			if err := r.ofDeletedBooks(tx, c).Update(c.table.Deleted, true).Error; err != nil {
				return fmt.Errorf("failed to flag %s of deleted books: %w", c.table.Name, err)
			}
		}

		for _, t := range []softdelete.Table{r.schema.Highlights, r.schema.Tags, r.schema.Books} {
			n, err := softdelete.Purge(tx, t)
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if total > 0 {
		log.Printf("Purged %d rows from trash", total)
	}
	return total, nil
}

// child is a table whose rows belong to a book.
type child struct {
	table softdelete.Table
	model interface{}
}

func (r *Repository) children() []child {
	return []child{
		{table: r.schema.Highlights, model: &entities.Highlight{}},
		{table: r.schema.Tags, model: &entities.Tag{}},
	}
}

// ofDeletedBooks selects the rows of c whose book is in the trash.
func (r *Repository) ofDeletedBooks(db *gorm.DB, c child) *gorm.DB {
	deletedBooks := db.Model(&entities.Book{}).Select("id").Where(softdelete.IsDeleted(r.schema.Books))
	return db.Model(c.model).Where("book_id IN (?)", deletedBooks)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= labelLength {
		return s
	}
	return string(r[:labelLength]) + "..."
}
