package books

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/shelf/internal/entities"
	"github.com/mrlokans/shelf/softdelete"
)

const highlightRowColumns = "highlights.id, highlights.book_id, " +
	"books.title AS book_title, books.author AS book_author, " +
	"highlights.text, highlights.location_value, highlights.highlighted_at"

// activeHighlights scopes a highlights query to active highlights of active books.
func (r *Repository) activeHighlights(db *gorm.DB) *gorm.DB {
	return db.Scopes(
		softdelete.SoftDeleted(r.schema.Highlights),
		softdelete.SoftInnerJoin(r.schema.HighlightBook),
	)
}

// GetHighlightByID retrieves an active highlight of an active book.
func (r *Repository) GetHighlightByID(id uint) (*entities.Highlight, error) {
	var highlight entities.Highlight
	err := r.db.Scopes(
		softdelete.SoftFind(r.schema.Highlights, id),
		softdelete.SoftInnerJoin(r.schema.HighlightBook),
	).First(&highlight).Error
	if err != nil {
		return nil, err
	}
	return &highlight, nil
}

// ListHighlights retrieves the newest highlights across all active books.
func (r *Repository) ListHighlights(limit, offset int) ([]entities.HighlightRow, error) {
	var rows []entities.HighlightRow
	query := r.db.Model(&entities.Highlight{}).
		Scopes(r.activeHighlights).
		Select(highlightRowColumns).
		Order("highlights.highlighted_at DESC, highlights.id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Scan(&rows).Error
	return rows, err
}

// CountHighlights counts the highlights ListHighlights can return.
func (r *Repository) CountHighlights() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Highlight{}).Scopes(r.activeHighlights).Count(&count).Error
	return count, err
}

// DeleteHighlight moves a highlight to the trash.
func (r *Repository) DeleteHighlight(id uint) error {
	n, err := softdelete.MarkDeleted(r.db, r.schema.Highlights, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("highlight %d: %w", id, gorm.ErrRecordNotFound)
	}
	log.Printf("Moved highlight %d to trash", id)
	return nil
}

// RestoreHighlight takes a highlight out of the trash.
func (r *Repository) RestoreHighlight(id uint) error {
	n, err := softdelete.Restore(r.db, r.schema.Highlights, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("highlight %d: %w", id, gorm.ErrRecordNotFound)
	}
	log.Printf("Restored highlight %d from trash", id)
	return nil
}
