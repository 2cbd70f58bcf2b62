package softdelete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

type Note struct {
	ID   uint `gorm:"primaryKey"`
	Text string
}

type Counter struct {
	ID      uint `gorm:"primaryKey"`
	Deleted int
}

type Flagged struct {
	ID       uint `gorm:"primaryKey"`
	Hidden   bool `softdelete:"flag"`
	Archived bool `softdelete:"flag"`
}

type Pair struct {
	Left    uint `gorm:"primaryKey"`
	Right   uint `gorm:"primaryKey"`
	Deleted bool
}

type Review struct {
	ID       uint `gorm:"primaryKey"`
	WriterID uint
	Writer   Author
	EditorID uint
	Editor   Author
	Deleted  bool
}

type Comment struct {
	ID      uint `gorm:"primaryKey"`
	PostID  uint
	Post    Post
	Deleted bool
}

type Group struct {
	ID      uint     `gorm:"primaryKey"`
	Members []Author `gorm:"many2many:group_members"`
	Deleted bool
}

func TestRegistry_Register(t *testing.T) {
	db := setupTestDB(t)
	reg := NewRegistry(db)

	require.NoError(t, reg.Register(&Author{}, &Post{}, Label{}))

	assert.Equal(t, []Table{authors, posts, labels}, reg.Tables())

	got, err := reg.Table(&Label{})
	require.NoError(t, err)
	assert.Equal(t, labels, got)

	t.Run("registering twice keeps one entry", func(t *testing.T) {
		require.NoError(t, reg.Register(&Author{}))
		assert.Len(t, reg.Tables(), 3)
	})

	t.Run("unregistered models", func(t *testing.T) {
		_, err := reg.Table(&Note{})
		assert.ErrorIs(t, err, ErrNotRegistered)
		assert.Panics(t, func() { reg.MustTable(&Note{}) })
	})
}

func TestRegistry_RegisterErrors(t *testing.T) {
	reg := NewRegistry(nil)

	tests := []struct {
		name  string
		model interface{}
		want  error
	}{
		{"no deleted column", &Note{}, ErrNoDeletedColumn},
		{"deleted column not boolean", &Counter{}, ErrDeletedNotBool},
		{"two flagged columns", &Flagged{}, ErrMultipleDeletedColumns},
		{"composite primary key", &Pair{}, ErrCompositePrimaryKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, reg.Register(tt.model), tt.want)
		})
	}
	assert.Empty(t, reg.Tables())

	t.Run("unparseable model", func(t *testing.T) {
		assert.Error(t, reg.Register(42))
	})
}

func TestRegistry_Relation(t *testing.T) {
	db := setupTestDB(t)
	reg := NewRegistry(db)
	require.NoError(t, reg.Register(&Author{}, &Post{}, &Label{}))

	t.Run("has many", func(t *testing.T) {
		rel, err := reg.Relation(&Author{}, &Post{})
		require.NoError(t, err)
		assert.Equal(t, authors, rel.Left)
		assert.Equal(t, posts, rel.Right)
		assert.Equal(t, []clause.Expression{
			clause.Eq{Column: authors.Column("id"), Value: posts.Column("author_id")},
		}, rel.On)
	})

	t.Run("declared on the right-hand model", func(t *testing.T) {
		rel, err := reg.Relation(&Post{}, &Author{})
		require.NoError(t, err)
		assert.Equal(t, posts, rel.Left)
		assert.Equal(t, authors, rel.Right)
		assert.Equal(t, []clause.Expression{
			clause.Eq{Column: posts.Column("author_id"), Value: authors.Column("id")},
		}, rel.On)
	})

	t.Run("belongs to", func(t *testing.T) {
		rel, err := reg.Relation(&Comment{}, &Post{})
		require.NoError(t, err)
		assert.Equal(t, "comments", rel.Left.Name)
		assert.Equal(t, posts, rel.Right)
		assert.Equal(t, []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "comments", Name: "post_id"}, Value: posts.Column("id")},
		}, rel.On)
	})

	t.Run("two relations to one model are ambiguous", func(t *testing.T) {
		_, err := reg.Relation(&Review{}, &Author{})
		assert.ErrorIs(t, err, ErrAmbiguousRelation)
	})

	t.Run("unregistered right side is plain", func(t *testing.T) {
		reg := NewRegistry(db)
		rel, err := reg.Relation(&Author{}, &Post{})
		require.NoError(t, err)
		assert.False(t, rel.Right.IsSoftDelete())
		assert.Equal(t, "posts", rel.Right.Name)
		assert.Equal(t, "id", rel.Right.PrimaryKey)
	})

	t.Run("unrelated models", func(t *testing.T) {
		_, err := reg.Relation(&Author{}, &Label{})
		assert.ErrorIs(t, err, ErrNoRelation)
	})

	t.Run("self join", func(t *testing.T) {
		_, err := reg.Relation(&Author{}, &Author{})
		assert.ErrorIs(t, err, ErrUnsupportedRelation)
	})

	t.Run("many to many", func(t *testing.T) {
		_, err := reg.Relation(&Group{}, &Author{})
		assert.ErrorIs(t, err, ErrUnsupportedRelation)
	})

	t.Run("derived relation joins", func(t *testing.T) {
		seedLibrary(t, db)
		rel, err := reg.Relation(&Author{}, &Post{})
		require.NoError(t, err)

		got := queryAuthorPosts(t, db, SoftDeleted(authors), SoftLeftJoin(rel))
		assert.Equal(t, []string{"alice:a1", "bob:-"}, got)
	})
}
