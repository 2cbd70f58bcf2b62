// Package tags provides database operations for book tags.
//
// Tags flag removal in their own is_removed column; a removed tag is restored
// when the same name is added to the book again. Tags of a book in the trash
// are hidden with the book and cannot be changed until it is restored.
//
// # Usage
//
//	repo := tags.NewRepository(db.DB, db.Schema)
//	tag, err := repo.AddTag(bookID, "fiction")
package tags

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/shelf/internal/database"
	"github.com/mrlokans/shelf/internal/entities"
	"github.com/mrlokans/shelf/softdelete"
)

// Repository handles all tag database operations.
type Repository struct {
	db     *gorm.DB
	schema *database.Schema
}

// NewRepository creates a new tags repository.
func NewRepository(db *gorm.DB, schema *database.Schema) *Repository {
	return &Repository{db: db, schema: schema}
}

// AddTag tags an active book. Names are matched case-insensitively: an active
// tag is returned as is, a removed one is restored.
func (r *Repository) AddTag(bookID uint, name string) (*entities.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is required")
	}

	var book entities.Book
	if err := r.db.Select("id").Scopes(softdelete.SoftFind(r.schema.Books, bookID)).First(&book).Error; err != nil {
		return nil, err
	}

	var tag entities.Tag
	err := r.db.Where("book_id = ? AND LOWER(name) = LOWER(?)", bookID, name).First(&tag).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		tag = entities.Tag{BookID: bookID, Name: name}
		if err := r.db.Create(&tag).Error; err != nil {
			return nil, err
		}
		return &tag, nil
	case err != nil:
		return nil, err
	}

	if tag.Removed {
		if _, err := softdelete.Restore(r.db, r.schema.Tags, tag.ID); err != nil {
			return nil, err
		}
		tag.Removed = false
	}
	return &tag, nil
}

// GetTagsForBook retrieves the active tags of an active book.
func (r *Repository) GetTagsForBook(bookID uint) ([]entities.Tag, error) {
	var tags []entities.Tag
	err := r.db.Scopes(
		softdelete.SoftFilter(r.schema.Tags, "tags.book_id = ?", bookID),
		softdelete.SoftInnerJoin(r.schema.TagBook),
	).Order("tags.name ASC").Find(&tags).Error
	return tags, err
}

// GetTagByID retrieves an active tag of an active book.
func (r *Repository) GetTagByID(id uint) (*entities.Tag, error) {
	var tag entities.Tag
	err := r.db.Scopes(
		softdelete.SoftFind(r.schema.Tags, id),
		softdelete.SoftInnerJoin(r.schema.TagBook),
	).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// RemoveTag moves a tag to the trash.
func (r *Repository) RemoveTag(id uint) error {
	return r.setRemoved(id, true)
}

// RestoreTag takes a tag out of the trash.
func (r *Repository) RestoreTag(id uint) error {
	return r.setRemoved(id, false)
}

func (r *Repository) setRemoved(id uint, removed bool) error {
	if err := r.checkBookActive(id); err != nil {
		return err
	}

	update := softdelete.Restore
	if removed {
		update = softdelete.MarkDeleted
	}
	n, err := update(r.db, r.schema.Tags, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("tag %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// checkBookActive fails with gorm.ErrRecordNotFound unless the tag exists and
// its book is not in the trash. The tag's own flag is not checked.
func (r *Repository) checkBookActive(id uint) error {
	var count int64
	err := r.db.Model(&entities.Tag{}).
		Where(clause.Eq{Column: r.schema.Tags.PrimaryKeyColumn(), Value: id}).
		Scopes(softdelete.SoftInnerJoin(r.schema.TagBook)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("tag %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
