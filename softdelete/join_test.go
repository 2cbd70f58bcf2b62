package softdelete

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func queryAuthorPosts(t *testing.T, db *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) []string {
	t.Helper()
	var rows []authorPost
	err := db.Model(&Author{}).
		Scopes(scopes...).
		Select("authors.name, posts.title").
		Order("authors.id, posts.id").
		Scan(&rows).Error
	require.NoError(t, err)
	return titles(rows)
}

func TestSoftLeftJoin(t *testing.T) {
	db := setupTestDB(t)
	seedLibrary(t, db)

	t.Run("keeps the left row when the related row is deleted", func(t *testing.T) {
		got := queryAuthorPosts(t, db, SoftDeleted(authors), SoftLeftJoin(authorPosts))
		assert.Equal(t, []string{"alice:a1", "bob:-"}, got)
	})

	t.Run("puts the predicate in the ON clause", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return tx.Scopes(SoftDeleted(authors), SoftLeftJoin(authorPosts)).Find(&[]Author{})
		})
		assert.Contains(t, sql, "LEFT JOIN `posts` ON `authors`.`id` = `posts`.`author_id` AND NOT `posts`.`deleted`")
		where := sql[strings.Index(sql, "WHERE"):]
		assert.NotContains(t, where, "`posts`.`deleted`")
	})

	t.Run("selects only the model columns by default", func(t *testing.T) {
		var got []Author
		err := db.Scopes(SoftDeleted(authors), SoftLeftJoin(authorPosts)).Order("authors.id").Find(&got).Error
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "alice", got[0].Name)
		assert.Equal(t, "bob", got[1].Name)
	})
}

func TestPlainLeftJoin(t *testing.T) {
	db := setupTestDB(t)
	seedLibrary(t, db)

	got := queryAuthorPosts(t, db, SoftDeleted(authors), Join(authorPosts, LeftJoin))
	assert.Equal(t, []string{"alice:a1", "alice:a2", "bob:b1"}, got)
}

func TestFilteringAfterLeftJoinDropsRows(t *testing.T) {
	db := setupTestDB(t)
	seedLibrary(t, db)

	// A WHERE predicate on the joined table turns the outer join into an
	// inner one: bob disappears because his only post is deleted.
	got := queryAuthorPosts(t, db, SoftDeleted(authors), Join(authorPosts, LeftJoin), SoftDeleted(posts))
	assert.Equal(t, []string{"alice:a1"}, got)
}

func TestSoftInnerJoin(t *testing.T) {
	db := setupTestDB(t)
	seedLibrary(t, db)

	t.Run("drops left rows without an active match", func(t *testing.T) {
		got := queryAuthorPosts(t, db, SoftDeleted(authors), SoftInnerJoin(authorPosts))
		assert.Equal(t, []string{"alice:a1"}, got)
	})

	t.Run("does not scope the left table", func(t *testing.T) {
		got := queryAuthorPosts(t, db, SoftInnerJoin(authorPosts))
		assert.Equal(t, []string{"alice:a1", "carol:c1"}, got)
	})

	t.Run("renders an inner join", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return tx.Scopes(SoftInnerJoin(authorPosts)).Find(&[]Author{})
		})
		assert.Contains(t, sql, "INNER JOIN `posts` ON")
	})
}

func TestSoftJoin_Chained(t *testing.T) {
	db := setupTestDB(t)
	seedLibrary(t, db)

	type row struct {
		Title string
		Label *string
	}
	var rows []row
	err := db.Model(&Author{}).
		Scopes(SoftDeleted(authors), SoftInnerJoin(authorPosts), SoftLeftJoin(postLabels)).
		Select("posts.title, labels.name AS label").
		Order("labels.id").
		Scan(&rows).Error
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a1", rows[0].Title)
	require.NotNil(t, rows[0].Label)
	assert.Equal(t, "go", *rows[0].Label)
}

func TestSoftJoin_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	seedLibrary(t, db)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(SoftLeftJoin(authorPosts), SoftLeftJoin(authorPosts)).Find(&[]Author{})
	})
	assert.Equal(t, 1, strings.Count(sql, "JOIN `posts`"), sql)

	once := queryAuthorPosts(t, db, SoftDeleted(authors), SoftLeftJoin(authorPosts))
	twice := queryAuthorPosts(t, db, SoftDeleted(authors), SoftLeftJoin(authorPosts), SoftLeftJoin(authorPosts))
	assert.Equal(t, once, twice)
}

func TestSoftJoin_Errors(t *testing.T) {
	db := setupTestDB(t)

	t.Run("right table must be soft-delete", func(t *testing.T) {
		rel := JoinOn(authors, Plain("posts"), "id", "author_id")
		err := db.Scopes(SoftLeftJoin(rel)).Find(&[]Author{}).Error
		assert.ErrorIs(t, err, ErrNotSoftDelete)

		// a plain join accepts it
		err = db.Scopes(Join(rel, LeftJoin)).Find(&[]Author{}).Error
		assert.NoError(t, err)
	})

	t.Run("plain and soft join of one table", func(t *testing.T) {
		err := db.Scopes(Join(authorPosts, LeftJoin), SoftLeftJoin(authorPosts)).Find(&[]Author{}).Error
		assert.ErrorIs(t, err, ErrDuplicateJoin)

		err = db.Scopes(SoftLeftJoin(authorPosts), SoftInnerJoin(authorPosts)).Find(&[]Author{}).Error
		assert.ErrorIs(t, err, ErrDuplicateJoin)
	})

	t.Run("ON clause is required", func(t *testing.T) {
		rel := Relation{Left: authors, Right: posts}
		err := db.Scopes(SoftLeftJoin(rel)).Find(&[]Author{}).Error
		assert.ErrorIs(t, err, ErrEmptyOnClause)

		err = db.Scopes(Join(rel, InnerJoin)).Find(&[]Author{}).Error
		assert.ErrorIs(t, err, ErrEmptyOnClause)
	})
}

func TestSoftJoin_BindsValues(t *testing.T) {
	db := setupTestDB(t)
	seedLibrary(t, db)

	rel := JoinOn(authors, posts, "id", "author_id")
	rel.On = append(rel.On, clause.Expr{SQL: "posts.title <> ?", Vars: []interface{}{"a1"}})

	got := queryAuthorPosts(t, db, SoftDeleted(authors), SoftLeftJoin(rel))
	assert.Equal(t, []string{"alice:-", "bob:-"}, got)
}
