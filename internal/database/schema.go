package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/shelf/internal/entities"
	"github.com/mrlokans/shelf/softdelete"
)

// Schema holds the soft-delete declarations shared by the repositories.
type Schema struct {
	Registry *softdelete.Registry

	Books      softdelete.Table
	Highlights softdelete.Table
	Tags       softdelete.Table

	BookHighlights softdelete.Relation // books -> highlights
	BookTags       softdelete.Relation // books -> tags
	BookSource     softdelete.Relation // books -> sources (sources are never deleted)
	HighlightBook  softdelete.Relation // highlights -> books
	TagBook        softdelete.Relation // tags -> books
}

// NewSchema registers the soft-delete models and derives their join clauses
// from the GORM associations.
func NewSchema(db *gorm.DB) (*Schema, error) {
	registry := softdelete.NewRegistry(db)
	if err := registry.Register(&entities.Book{}, &entities.Highlight{}, &entities.Tag{}); err != nil {
		return nil, err
	}

	s := &Schema{
		Registry:   registry,
		Books:      registry.MustTable(&entities.Book{}),
		Highlights: registry.MustTable(&entities.Highlight{}),
		Tags:       registry.MustTable(&entities.Tag{}),
	}

	relations := []struct {
		dst         *softdelete.Relation
		left, right interface{}
	}{
		{&s.BookHighlights, &entities.Book{}, &entities.Highlight{}},
		{&s.BookTags, &entities.Book{}, &entities.Tag{}},
		{&s.BookSource, &entities.Book{}, &entities.Source{}},
		{&s.HighlightBook, &entities.Highlight{}, &entities.Book{}},
		{&s.TagBook, &entities.Tag{}, &entities.Book{}},
	}
	for _, rel := range relations {
		r, err := registry.Relation(rel.left, rel.right)
		if err != nil {
			return nil, fmt.Errorf("relation %T -> %T: %w", rel.left, rel.right, err)
		}
		*rel.dst = r
	}

	return s, nil
}
