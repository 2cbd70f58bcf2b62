package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelf/internal/entities"
)

const (
	defaultHighlightsLimit = 50
	maxHighlightsLimit     = 500
)

type HighlightsController struct {
	store HighlightStore
}

func NewHighlightsController(store HighlightStore) *HighlightsController {
	return &HighlightsController{store: store}
}

// ListHighlights returns the newest highlights of active books
// GET /api/highlights?limit=&offset=
func (hc *HighlightsController) ListHighlights(c *gin.Context) {
	limit, ok := parseQueryInt(c, "limit", defaultHighlightsLimit)
	if !ok {
		return
	}
	offset, ok := parseQueryInt(c, "offset", 0)
	if !ok {
		return
	}
	if limit == 0 || limit > maxHighlightsLimit {
		limit = maxHighlightsLimit
	}

	rows, err := hc.store.ListHighlights(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list highlights")
		return
	}
	total, err := hc.store.CountHighlights()
	if err != nil {
		respondInternalError(c, err, "count highlights")
		return
	}
	if rows == nil {
		rows = []entities.HighlightRow{}
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    rows,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(rows)) < total,
	})
}

// GetHighlight returns an active highlight of an active book
// GET /api/highlights/:id
func (hc *HighlightsController) GetHighlight(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	highlight, err := hc.store.GetHighlightByID(id)
	if err != nil {
		respondStoreError(c, err, "highlight", "get highlight")
		return
	}
	c.JSON(http.StatusOK, highlight)
}

// DeleteHighlight moves a highlight to the trash
// DELETE /api/highlights/:id
func (hc *HighlightsController) DeleteHighlight(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := hc.store.DeleteHighlight(id); err != nil {
		respondStoreError(c, err, "highlight", "delete highlight")
		return
	}
	respondSuccess(c, "highlight moved to trash")
}

// RestoreHighlight takes a highlight out of the trash
// POST /api/highlights/:id/restore
func (hc *HighlightsController) RestoreHighlight(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := hc.store.RestoreHighlight(id); err != nil {
		respondStoreError(c, err, "deleted highlight", "restore highlight")
		return
	}
	respondSuccess(c, "highlight restored")
}
