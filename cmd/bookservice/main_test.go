package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-gateway/internal/config"
	"catalog-gateway/internal/domains/book/model"
	infraCache "catalog-gateway/internal/infrastructure/cache"
	"catalog-gateway/pkg/container"
)

func TestNewRepositoryMemory(t *testing.T) {
	repo := newRepository(&config.Config{}, &container.Store{Driver: config.StoreDriverMemory})

	book, err := repo.Create(context.Background(), model.BookInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, book, got)
}

func TestNewRepositoryCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := infraCache.NewRedisCache(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })

	cfg := &config.Config{Store: config.StoreConfig{CacheTTL: time.Minute}}
	repo := newRepository(cfg, &container.Store{Driver: config.StoreDriverMemory, Cache: rc})

	book, err := repo.Create(context.Background(), model.BookInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("book:"+book.ID))
}
