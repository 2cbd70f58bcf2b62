package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelf/internal/entities"
)

type TagsController struct {
	store TagStore
}

func NewTagsController(store TagStore) *TagsController {
	return &TagsController{store: store}
}

// GetBookTags returns the active tags of a book
// GET /api/books/:id/tags
func (tc *TagsController) GetBookTags(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tags, err := tc.store.GetTagsForBook(bookID)
	if err != nil {
		respondInternalError(c, err, "get book tags")
		return
	}
	if tags == nil {
		tags = []entities.Tag{}
	}
	c.JSON(http.StatusOK, tags)
}

// AddTagToBook tags a book, restoring a removed tag of the same name
// POST /api/books/:id/tags
func (tc *TagsController) AddTagToBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" form:"name" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respondBadRequest(c, "name is required")
		return
	}

	tag, err := tc.store.AddTag(bookID, req.Name)
	if err != nil {
		respondStoreError(c, err, "book", "add tag to book")
		return
	}
	respondCreated(c, tag)
}

// RemoveTag moves a tag to the trash
// DELETE /api/tags/:id
func (tc *TagsController) RemoveTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.store.RemoveTag(id); err != nil {
		respondStoreError(c, err, "tag", "remove tag")
		return
	}
	respondSuccess(c, "tag removed")
}

// RestoreTag takes a tag out of the trash
// POST /api/tags/:id/restore
func (tc *TagsController) RestoreTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.store.RestoreTag(id); err != nil {
		respondStoreError(c, err, "removed tag", "restore tag")
		return
	}
	respondSuccess(c, "tag restored")
}
