package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/winterfair/fairbot/internal/domain"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := repository.NewSQLiteStore(ctx, db, nil)
	require.NoError(t, err)

	content := catalog.Default()
	tasks := make([]*domain.Task, 0, len(content.Tasks))
	for _, spec := range content.Tasks {
		task := spec.Task
		tasks = append(tasks, &task)
	}
	require.NoError(t, store.SeedCatalog(ctx, content.Pavilions, tasks, content.Facts))

	registry := catalog.NewRegistry(nil)
	registry.Load(content)

	return NewService(store, registry, 50, nil)
}

func TestGetOrCreate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 50, user.Coins)
	assert.Equal(t, []int64{1}, user.PavilionsOpen, "the free pavilion opens on first contact")

	again, err := svc.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 50, again.Coins)
	assert.Equal(t, []int64{1}, again.PavilionsOpen)
}

func TestBuyPavilion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, 1)
	require.NoError(t, err)

	// Pavilion 2 costs 30: 50 -> 20.
	pav, err := svc.BuyPavilion(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Мороженое и какао", pav.Name)

	user, err := svc.store.User(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 20, user.Coins)
	assert.True(t, user.HasPavilion(2))

	// Pavilion 3 costs 45: over the remaining 20, nothing changes.
	_, err = svc.BuyPavilion(ctx, 1, 3)
	assert.ErrorIs(t, err, ErrNotEnoughCoins)

	user, err = svc.store.User(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 20, user.Coins)
	assert.False(t, user.HasPavilion(3))

	// Rebuying an owned pavilion charges nothing.
	_, err = svc.BuyPavilion(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyOpen)

	user, err = svc.store.User(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 20, user.Coins)
}

func TestBuyUnknownPavilion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, 1)
	require.NoError(t, err)

	_, err = svc.BuyPavilion(ctx, 1, 99)
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, 1)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 50, stats.Coins)
	assert.Equal(t, 1, stats.PavilionsOpen)
	assert.EqualValues(t, 0, stats.TasksCompleted)
}
