package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListHighlights(t *testing.T) {
	repo := setupTestDB(t)
	walden := createBook(t, repo, "Walden", "Henry David Thoreau", "w1", "w2")
	meditations := createBook(t, repo, "Meditations", "Marcus Aurelius", "m1")

	rows, err := repo.ListHighlights(0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// Newest first, ties broken by id.
	assert.Equal(t, "w2", rows[0].Text)
	assert.Equal(t, "Walden", rows[0].BookTitle)
	assert.Equal(t, "Henry David Thoreau", rows[0].BookAuthor)

	t.Run("deleted highlight is hidden", func(t *testing.T) {
		require.NoError(t, repo.DeleteHighlight(walden.Highlights[1].ID))
		rows, err := repo.ListHighlights(0, 0)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("highlights of a deleted book are hidden", func(t *testing.T) {
		require.NoError(t, repo.DeleteBook(walden.ID))
		rows, err := repo.ListHighlights(0, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, meditations.ID, rows[0].BookID)

		count, err := repo.CountHighlights()
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("restoring the book brings its active highlights back", func(t *testing.T) {
		require.NoError(t, repo.RestoreBook(walden.ID))
		rows, err := repo.ListHighlights(0, 0)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestRepository_ListHighlights_Pagination(t *testing.T) {
	repo := setupTestDB(t)
	createBook(t, repo, "Walden", "Henry David Thoreau", "a", "b", "c", "d")

	page, err := repo.ListHighlights(2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "d", page[0].Text)

	page, err = repo.ListHighlights(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Text)
	assert.Equal(t, "a", page[1].Text)
}

func TestRepository_GetHighlightByID(t *testing.T) {
	repo := setupTestDB(t)
	book := createBook(t, repo, "Walden", "Henry David Thoreau", "w1")
	id := book.Highlights[0].ID

	h, err := repo.GetHighlightByID(id)
	require.NoError(t, err)
	assert.Equal(t, "w1", h.Text)

	require.NoError(t, repo.DeleteBook(book.ID))
	_, err = repo.GetHighlightByID(id)
	assert.True(t, IsNotFound(err))

	require.NoError(t, repo.RestoreBook(book.ID))
	require.NoError(t, repo.DeleteHighlight(id))
	_, err = repo.GetHighlightByID(id)
	assert.True(t, IsNotFound(err))

	require.NoError(t, repo.RestoreHighlight(id))
	_, err = repo.GetHighlightByID(id)
	assert.NoError(t, err)
}

func TestRepository_DeleteHighlight_Missing(t *testing.T) {
	repo := setupTestDB(t)

	assert.True(t, IsNotFound(repo.DeleteHighlight(42)))
	assert.True(t, IsNotFound(repo.RestoreHighlight(42)))
}
