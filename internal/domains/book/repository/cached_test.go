package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/infrastructure/cache"
)

// countingRepository records how often GetByID reaches the store
type countingRepository struct {
	Repository
	gets int
}

func (r *countingRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	r.gets++
	return r.Repository.GetByID(ctx, id)
}

func newCached(t *testing.T) (Repository, *countingRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := cache.NewRedisCache(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })

	inner := &countingRepository{Repository: NewMemoryRepository()}
	return NewCachedRepository(inner, rc, time.Minute), inner, mr
}

func TestCachedRepository_CreateWarmsCache(t *testing.T) {
	repo, inner, mr := newCached(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.BookInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("book:"+created.ID))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 0, inner.gets)
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	repo, inner, mr := newCached(t)
	ctx := context.Background()

	created, err := inner.Create(ctx, model.BookInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.gets)
	assert.True(t, mr.Exists("book:"+created.ID))
}

func TestCachedRepository_NotFoundIsNotCached(t *testing.T) {
	repo, _, mr := newCached(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.False(t, mr.Exists("book:missing"))
}

func TestCachedRepository_CacheDownFallsBack(t *testing.T) {
	repo, inner, mr := newCached(t)
	ctx := context.Background()

	created, err := inner.Create(ctx, model.BookInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	mr.Close()

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
