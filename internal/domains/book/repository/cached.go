package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/domains/book/model"
	"catalog-gateway/pkg/cache"
)

// cachedRepository keeps Get results in the cache. Books are immutable so
// entries never need invalidating, the ttl only bounds memory.
type cachedRepository struct {
	next  Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(next Repository, c cache.Cache, ttl time.Duration) Repository {
	return &cachedRepository{next: next, cache: c, ttl: ttl}
}

func cacheKey(id string) string {
	return "book:" + id
}

func (r *cachedRepository) Create(ctx context.Context, input model.BookInput) (*model.Book, error) {
	book, err := r.next.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	r.store(ctx, book)
	return book, nil
}

func (r *cachedRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	var cached model.Book
	found, err := r.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		log.Warn().Err(err).Str("book_id", id).Msg("[REDIS] Cache read failed, falling back to store")
	} else if found {
		return &cached, nil
	}

	book, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, book)
	return book, nil
}

func (r *cachedRepository) Search(ctx context.Context, query string) ([]model.Book, error) {
	return r.next.Search(ctx, query)
}

func (r *cachedRepository) store(ctx context.Context, book *model.Book) {
	if err := r.cache.Set(ctx, cacheKey(book.ID), book, r.ttl); err != nil {
		log.Warn().Err(err).Str("book_id", book.ID).Msg("[REDIS] Cache write failed")
	}
}
