package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelf/internal/entities"
)

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// ListBooks returns active books, optionally filtered by title or author
// GET /api/books?q=
func (bc *BooksController) ListBooks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	var (
		books []entities.Book
		err   error
	)
	if query != "" {
		books, err = bc.store.SearchBooks(query)
	} else {
		books, err = bc.store.GetAllBooks()
	}
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	if books == nil {
		books = []entities.Book{}
	}
	c.JSON(http.StatusOK, books)
}

// GetBook returns an active book with its active highlights and tags
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		respondStoreError(c, err, "book", "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Overview returns active books with their highlight counts
// GET /api/books/overview
func (bc *BooksController) Overview(c *gin.Context) {
	summaries, err := bc.store.GetBookOverview()
	if err != nil {
		respondInternalError(c, err, "book overview")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// DeleteBook moves a book to the trash (can be restored)
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.DeleteBook(id); err != nil {
		respondStoreError(c, err, "book", "delete book")
		return
	}
	respondSuccess(c, "book moved to trash")
}

// RestoreBook takes a book out of the trash
// POST /api/books/:id/restore
func (bc *BooksController) RestoreBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.RestoreBook(id); err != nil {
		respondStoreError(c, err, "deleted book", "restore book")
		return
	}
	respondSuccess(c, "book restored")
}
