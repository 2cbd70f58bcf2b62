package softdelete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMarkDeletedAndRestore(t *testing.T) {
	db := setupTestDB(t)
	seedLibrary(t, db)

	alice := findAuthor(t, db, "alice")

	n, err := MarkDeleted(db, authors, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var got Author
	err = db.Scopes(SoftFind(authors, alice.ID)).First(&got).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	t.Run("deleting twice changes nothing", func(t *testing.T) {
		n, err := MarkDeleted(db, authors, alice.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("restore brings the row back", func(t *testing.T) {
		n, err := Restore(db, authors, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		var got Author
		require.NoError(t, db.Scopes(SoftFind(authors, alice.ID)).First(&got).Error)
		assert.Equal(t, "alice", got.Name)

		n, err = Restore(db, authors, alice.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("custom flag column", func(t *testing.T) {
		var label Label
		require.NoError(t, db.Where("name = ?", "go").First(&label).Error)

		n, err := MarkDeleted(db, labels, label.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, db.First(&label, label.ID).Error)
		assert.True(t, label.Removed)
	})

	t.Run("plain tables are rejected", func(t *testing.T) {
		_, err := MarkDeleted(db, Plain("authors"), alice.ID)
		assert.ErrorIs(t, err, ErrNotSoftDelete)
		_, err = Restore(db, authors.WithPrimaryKey(""), alice.ID)
		assert.ErrorIs(t, err, ErrNoPrimaryKey)
	})
}

func TestCountAndPurge(t *testing.T) {
	db := setupTestDB(t)
	seedLibrary(t, db)

	active, deleted, err := Count(db, posts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)
	assert.Equal(t, int64(2), deleted)

	n, err := Purge(db, posts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	active, deleted, err = Count(db, posts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)
	assert.Zero(t, deleted)

	var remaining []Post
	require.NoError(t, db.Order("id").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, "a1", remaining[0].Title)
	assert.Equal(t, "c1", remaining[1].Title)

	_, err = Purge(db, Plain("posts"))
	assert.ErrorIs(t, err, ErrNotSoftDelete)
	_, _, err = Count(db, Plain("posts"))
	assert.ErrorIs(t, err, ErrNotSoftDelete)
}
