package idempotency

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winterfair/fairbot/pkg/redis"
)

func TestMemoryManagerFirstOnlyOnce(t *testing.T) {
	m := NewMemoryManager()
	ctx := context.Background()

	first, err := m.First(ctx, "cb:abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := m.First(ctx, "cb:abc", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)
}

func TestMemoryManagerExpiry(t *testing.T) {
	m := NewMemoryManager()
	ctx := context.Background()

	_, err := m.First(ctx, "cb:short", 5*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	first, err := m.First(ctx, "cb:short", time.Minute)
	require.NoError(t, err)
	assert.True(t, first, "expired key should be claimable again")
}

func TestMemoryManagerKeysAreIndependent(t *testing.T) {
	m := NewMemoryManager()
	ctx := context.Background()

	_, err := m.First(ctx, "cb:one", time.Minute)
	require.NoError(t, err)

	first, err := m.First(ctx, "cb:two", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestRedisManagerFirstOnlyOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	client := &redis.Client{Client: goredis.NewClient(&goredis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = client.Close() })

	m := NewRedisManager(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	first, err := m.First(ctx, "msg:10:55", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := m.First(ctx, "msg:10:55", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)

	mr.FastForward(2 * time.Minute)

	reclaimed, err := m.First(ctx, "msg:10:55", time.Minute)
	require.NoError(t, err)
	assert.True(t, reclaimed)
}
