package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"catalog-gateway/internal/domains/author/model"
)

type memoryRepository struct {
	mu      sync.RWMutex
	authors map[string]model.Author
	order   []string
}

func NewMemoryRepository() Repository {
	return &memoryRepository{authors: make(map[string]model.Author)}
}

func (r *memoryRepository) Create(_ context.Context, input model.AuthorInput) (*model.Author, error) {
	author := model.Author{
		ID:   uuid.NewString(),
		Name: input.Name,
		Bio:  input.Bio,
	}

	r.mu.Lock()
	r.authors[author.ID] = author
	r.order = append(r.order, author.ID)
	r.mu.Unlock()

	return &author, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*model.Author, error) {
	r.mu.RLock()
	author, ok := r.authors[id]
	r.mu.RUnlock()

	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return &author, nil
}

func (r *memoryRepository) Search(_ context.Context, query string) ([]model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.FilterMap(r.order, func(id string, _ int) (model.Author, bool) {
		author := r.authors[id]
		return author, author.Matches(query)
	}), nil
}
