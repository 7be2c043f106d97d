package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"catalog-gateway/internal/domains/book/model"
)

type memoryRepository struct {
	mu    sync.RWMutex
	books map[string]model.Book
	order []string
}

// NewMemoryRepository returns a process-local store, used in development
// and tests
func NewMemoryRepository() Repository {
	return &memoryRepository{books: make(map[string]model.Book)}
}

func (r *memoryRepository) Create(_ context.Context, input model.BookInput) (*model.Book, error) {
	book := model.Book{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
	}

	r.mu.Lock()
	r.books[book.ID] = book
	r.order = append(r.order, book.ID)
	r.mu.Unlock()

	return &book, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*model.Book, error) {
	r.mu.RLock()
	book, ok := r.books[id]
	r.mu.RUnlock()

	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &book, nil
}

func (r *memoryRepository) Search(_ context.Context, query string) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.FilterMap(r.order, func(id string, _ int) (model.Book, bool) {
		book := r.books[id]
		return book, book.Matches(query)
	}), nil
}
