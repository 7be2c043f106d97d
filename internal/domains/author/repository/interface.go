package repository

import (
	"context"

	"catalog-gateway/internal/domains/author/model"
)

// Repository stores authors. Records are created once and never updated.
type Repository interface {
	Create(ctx context.Context, input model.AuthorInput) (*model.Author, error)
	// GetByID returns model.ErrAuthorNotFound when no record has that id
	GetByID(ctx context.Context, id string) (*model.Author, error)
	Search(ctx context.Context, query string) ([]model.Author, error)
}
