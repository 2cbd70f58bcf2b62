package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelf/internal/entities"
)

// TrashResponse lists the trash together with per-table counts.
type TrashResponse struct {
	Items []entities.TrashItem  `json:"items"`
	Stats []entities.TrashStats `json:"stats"`
}

type TrashController struct {
	store TrashStore
}

func NewTrashController(store TrashStore) *TrashController {
	return &TrashController{store: store}
}

// List returns every soft-deleted row
// GET /api/trash
func (tc *TrashController) List(c *gin.Context) {
	items, err := tc.store.List()
	if err != nil {
		respondInternalError(c, err, "list trash")
		return
	}
	stats, err := tc.store.Stats()
	if err != nil {
		respondInternalError(c, err, "trash stats")
		return
	}
	if items == nil {
		items = []entities.TrashItem{}
	}
	c.JSON(http.StatusOK, TrashResponse{Items: items, Stats: stats})
}

// Empty permanently removes everything in the trash
// DELETE /api/trash
func (tc *TrashController) Empty(c *gin.Context) {
	purged, err := tc.store.Purge()
	if err != nil {
		respondInternalError(c, err, "empty trash")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "trash emptied",
		Data:    gin.H{"purged": purged},
	})
}
