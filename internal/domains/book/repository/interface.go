package repository

import (
	"context"

	"catalog-gateway/internal/domains/book/model"
)

// Repository stores books. Records are created once and never updated.
type Repository interface {
	// Create assigns an id and persists the book
	Create(ctx context.Context, input model.BookInput) (*model.Book, error)
	// GetByID returns model.ErrBookNotFound when no record has that id
	GetByID(ctx context.Context, id string) (*model.Book, error)
	// Search returns every book matching query, see model.Book.Matches
	Search(ctx context.Context, query string) ([]model.Book, error)
}
