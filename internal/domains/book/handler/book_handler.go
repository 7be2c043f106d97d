package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/shared/apperror"
	"catalog-gateway/internal/shared/response"
)

// Catalog is the part of catalog.Catalog the book routes need
type Catalog interface {
	GetBook(ctx context.Context, id string) (*model.Book, error)
	SearchBooks(ctx context.Context, query string) ([]model.Book, error)
	AddBook(ctx context.Context, input model.BookInput) (*model.Book, error)
}

// BookHandler handles HTTP requests for the book routes
type BookHandler struct {
	catalog Catalog
}

func NewBookHandler(catalog Catalog) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// RegisterRoutes mounts /books on rg
func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.GET("", h.SearchBooks)
		books.GET("/:id", h.GetBook)
		books.POST("", h.AddBook)
	}
}

// SearchBooks handles GET /books?query=
func (h *BookHandler) SearchBooks(c *gin.Context) {
	books, err := h.catalog.SearchBooks(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.InternalError(c, model.MsgSearchBooksError)
		return
	}
	response.OK(c, books)
}

// GetBook handles GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	book, err := h.catalog.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperror.IsNotFound(err) {
			response.NotFound(c, model.MsgBookNotFound)
			return
		}
		response.InternalError(c, model.MsgRetrieveBookError)
		return
	}
	response.OK(c, book)
}

// AddBook handles POST /books. Both a rejected input and a failed write or
// publish answer 400.
func (h *BookHandler) AddBook(c *gin.Context) {
	var input model.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, model.MsgAddBookInvalid)
		return
	}

	book, err := h.catalog.AddBook(c.Request.Context(), input)
	if err != nil {
		if apperror.IsInvalid(err) {
			response.BadRequest(c, model.MsgAddBookInvalid)
			return
		}
		response.BadRequest(c, model.MsgAddBookError)
		return
	}
	response.Created(c, book)
}
