package repository

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/winterfair/fairbot/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLiteStore(context.Background(), db, nil)
	require.NoError(t, err)

	return store
}

func seedTestCatalog(t *testing.T, store *SQLiteStore) {
	t.Helper()

	pavilions := []*domain.Pavilion{
		{ID: 1, Name: "Варежки", Emoji: "🧤", Location: "вход", Price: 0, Reward: 10, Description: "d", Atmosphere: "a", TasksCount: 2},
		{ID: 2, Name: "Мороженое", Emoji: "🍦", Location: "аллея", Price: 30, Reward: 12, Description: "d", Atmosphere: "a", TasksCount: 1},
	}
	tasks := []*domain.Task{
		{ID: 1, PavilionID: 1, Name: "Варежки", Emoji: "🧤", Type: "choice", Reward: 10, FactID: 1},
		{ID: 2, PavilionID: 1, Name: "Термометр", Emoji: "🌡", Type: "reaction", Reward: 10, FactID: 2},
		{ID: 3, PavilionID: 2, Name: "Эспрессо", Emoji: "☕️", Type: "reaction", Reward: 12},
	}
	facts := []*domain.Fact{
		{ID: 1, PavilionID: 1, Text: "факт один"},
		{ID: 2, PavilionID: 1, Text: "факт два"},
	}

	require.NoError(t, store.SeedCatalog(context.Background(), pavilions, tasks, facts))
}

func TestGetOrCreateUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.GetOrCreateUser(ctx, 1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 50, user.Coins)
	assert.Empty(t, user.PavilionsOpen)

	// Second call returns the existing profile untouched.
	again, err := store.GetOrCreateUser(ctx, 1, 999)
	require.NoError(t, err)
	assert.EqualValues(t, 50, again.Coins)

	_, err = store.User(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoinsFlow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, 1, 50)
	require.NoError(t, err)

	require.NoError(t, store.AddCoins(ctx, 1, 10))
	require.NoError(t, store.SpendCoins(ctx, 1, 30))

	user, err := store.User(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 30, user.Coins)

	// A debit above the balance is rejected and changes nothing.
	err = store.SpendCoins(ctx, 1, 31)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	user, err = store.User(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 30, user.Coins)

	assert.ErrorIs(t, store.AddCoins(ctx, 42, 10), ErrNotFound)
}

func TestConcurrentAddCoins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, 1, 0)
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.AddCoins(ctx, 1, 5))
		}()
	}
	wg.Wait()

	user, err := store.User(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, workers*5, user.Coins)
}

func TestOpenPavilionIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, 1, 50)
	require.NoError(t, err)

	require.NoError(t, store.OpenPavilion(ctx, 1, 1))
	require.NoError(t, store.OpenPavilion(ctx, 1, 2))
	require.NoError(t, store.OpenPavilion(ctx, 1, 1))

	user, err := store.User(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, user.PavilionsOpen)
	assert.True(t, user.HasPavilion(2))
	assert.False(t, user.HasPavilion(3))
}

func TestAddFactIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, 1, 50)
	require.NoError(t, err)

	require.NoError(t, store.AddFact(ctx, 1, 7))
	require.NoError(t, store.AddFact(ctx, 1, 7))

	user, err := store.User(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, user.FactsCollected)

	assert.ErrorIs(t, store.AddFact(ctx, 42, 7), ErrNotFound)
}

func TestCounters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, 1, 50)
	require.NoError(t, err)

	require.NoError(t, store.IncrementTasksCompleted(ctx, 1))
	require.NoError(t, store.IncrementTasksCompleted(ctx, 1))
	require.NoError(t, store.IncrementGuestsServed(ctx, 1))

	stats, err := store.UserStats(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TasksCompleted)
	assert.EqualValues(t, 1, stats.GuestsServed)
	assert.EqualValues(t, 50, stats.Coins)
}

func TestCatalogQueries(t *testing.T) {
	store := newTestStore(t)
	seedTestCatalog(t, store)
	ctx := context.Background()

	pav, err := store.Pavilion(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Мороженое", pav.Name)

	_, err = store.Pavilion(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	pavilions, err := store.Pavilions(ctx)
	require.NoError(t, err)
	assert.Len(t, pavilions, 2)

	task, err := store.Task(ctx, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 0, task.FactID, "NULL fact_id reads back as zero")

	tasks, err := store.PavilionTasks(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	facts, err := store.PavilionFacts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, facts, 2)

	// Reseeding keeps existing rows untouched.
	require.NoError(t, store.SeedCatalog(ctx, []*domain.Pavilion{{ID: 1, Name: "Другое"}}, nil, nil))
	pav, err = store.Pavilion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Варежки", pav.Name)
}
