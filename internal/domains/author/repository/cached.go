package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/domains/author/model"
	"catalog-gateway/pkg/cache"
)

type cachedRepository struct {
	next  Repository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedRepository serves GetByID from the cache when possible
func NewCachedRepository(next Repository, c cache.Cache, ttl time.Duration) Repository {
	return &cachedRepository{next: next, cache: c, ttl: ttl}
}

func cacheKey(id string) string {
	return "author:" + id
}

func (r *cachedRepository) Create(ctx context.Context, input model.AuthorInput) (*model.Author, error) {
	author, err := r.next.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	r.store(ctx, author)
	return author, nil
}

func (r *cachedRepository) GetByID(ctx context.Context, id string) (*model.Author, error) {
	var cached model.Author
	found, err := r.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		log.Warn().Err(err).Str("author_id", id).Msg("[REDIS] Cache read failed, falling back to store")
	} else if found {
		return &cached, nil
	}

	author, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, author)
	return author, nil
}

func (r *cachedRepository) Search(ctx context.Context, query string) ([]model.Author, error) {
	return r.next.Search(ctx, query)
}

func (r *cachedRepository) store(ctx context.Context, author *model.Author) {
	if err := r.cache.Set(ctx, cacheKey(author.ID), author, r.ttl); err != nil {
		log.Warn().Err(err).Str("author_id", author.ID).Msg("[REDIS] Cache write failed")
	}
}
