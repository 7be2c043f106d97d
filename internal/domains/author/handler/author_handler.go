package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"catalog-gateway/internal/domains/author/model"
	"catalog-gateway/internal/shared/apperror"
	"catalog-gateway/internal/shared/response"
)

type Catalog interface {
	GetAuthor(ctx context.Context, id string) (*model.Author, error)
	SearchAuthors(ctx context.Context, query string) ([]model.Author, error)
	AddAuthor(ctx context.Context, input model.AuthorInput) (*model.Author, error)
}

// AuthorHandler handles HTTP requests for the author routes
type AuthorHandler struct {
	catalog Catalog
}

func NewAuthorHandler(catalog Catalog) *AuthorHandler {
	return &AuthorHandler{catalog: catalog}
}

func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	{
		authors.GET("", h.SearchAuthors)
		authors.GET("/:id", h.GetAuthor)
		authors.POST("", h.AddAuthor)
	}
}

// SearchAuthors handles GET /authors?query=
func (h *AuthorHandler) SearchAuthors(c *gin.Context) {
	authors, err := h.catalog.SearchAuthors(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.InternalError(c, model.MsgSearchAuthorsError)
		return
	}
	response.OK(c, authors)
}

// GetAuthor handles GET /authors/:id
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	author, err := h.catalog.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperror.IsNotFound(err) {
			response.NotFound(c, model.MsgAuthorNotFound)
			return
		}
		response.InternalError(c, model.MsgRetrieveAuthorError)
		return
	}
	response.OK(c, author)
}

// AddAuthor handles POST /authors
func (h *AuthorHandler) AddAuthor(c *gin.Context) {
	var input model.AuthorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, model.MsgAddAuthorInvalid)
		return
	}

	author, err := h.catalog.AddAuthor(c.Request.Context(), input)
	if err != nil {
		if apperror.IsInvalid(err) {
			response.BadRequest(c, model.MsgAddAuthorInvalid)
			return
		}
		response.BadRequest(c, model.MsgAddAuthorError)
		return
	}
	response.Created(c, author)
}
