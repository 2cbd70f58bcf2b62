package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)

	api := router.Group("/api")

	if cfg.BookStore != nil {
		booksController := NewBooksController(cfg.BookStore)
		api.GET("/books", booksController.ListBooks)
		api.GET("/books/overview", booksController.Overview)
		api.GET("/books/:id", booksController.GetBook)
		api.DELETE("/books/:id", booksController.DeleteBook)
		api.POST("/books/:id/restore", booksController.RestoreBook)
	}

	if cfg.HighlightStore != nil {
		highlightsController := NewHighlightsController(cfg.HighlightStore)
		api.GET("/highlights", highlightsController.ListHighlights)
		api.GET("/highlights/:id", highlightsController.GetHighlight)
		api.DELETE("/highlights/:id", highlightsController.DeleteHighlight)
		api.POST("/highlights/:id/restore", highlightsController.RestoreHighlight)
	}

	if cfg.TagStore != nil {
		tagsController := NewTagsController(cfg.TagStore)
		api.GET("/books/:id/tags", tagsController.GetBookTags)
		api.POST("/books/:id/tags", tagsController.AddTagToBook)
		api.DELETE("/tags/:id", tagsController.RemoveTag)
		api.POST("/tags/:id/restore", tagsController.RestoreTag)
	}

	if cfg.TrashStore != nil {
		trashController := NewTrashController(cfg.TrashStore)
		api.GET("/trash", trashController.List)
		api.DELETE("/trash", trashController.Empty)
	}

	return router
}
