package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Connect(context.Background()))
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "author:1", cachedRecord{ID: "1", Name: "Asimov"}, time.Minute))

	var got cachedRecord
	found, err := c.Get(ctx, "author:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedRecord{ID: "1", Name: "Asimov"}, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var got cachedRecord
	found, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got.ID)
}

func TestRedisCache_TTLAndDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", cachedRecord{ID: "1"}, time.Second))
	require.NoError(t, c.Set(ctx, "k2", cachedRecord{ID: "2"}, time.Minute))

	mr.FastForward(2 * time.Second)

	var got cachedRecord
	found, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, found, "expired key should miss")

	require.NoError(t, c.Delete(ctx, "k2"))
	found, err = c.Get(ctx, "k2", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_PingFailsWhenServerDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	assert.Error(t, c.Ping(context.Background()))
}
