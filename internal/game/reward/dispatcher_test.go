package reward

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/repository"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *repository.SQLiteStore) {
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

	return NewDispatcher(store, registry, nil), store
}

func TestComplete(t *testing.T) {
	dispatcher, store := newTestDispatcher(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, 1, 50)
	require.NoError(t, err)

	res, err := dispatcher.Complete(ctx, 1, 3)
	require.NoError(t, err)

	assert.EqualValues(t, 10, res.Reward)
	assert.EqualValues(t, 60, res.NewBalance)
	assert.EqualValues(t, 1, res.PavilionID)
	assert.EqualValues(t, 3, res.FactID)
	assert.Equal(t, "Проверить термометр", res.TaskName)

	stats, err := store.UserStats(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TasksCompleted)
	assert.EqualValues(t, 1, stats.GuestsServed)
}

func TestCompletePaysPavilionReward(t *testing.T) {
	ctx := context.Background()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := repository.NewSQLiteStore(ctx, db, nil)
	require.NoError(t, err)

	// The task's own reward diverges from the pavilion rate on purpose:
	// the payout must follow the pavilion.
	registry := catalog.NewRegistry(nil)
	registry.Load(&catalog.Content{
		Pavilions: []*domain.Pavilion{
			{ID: 1, Name: "Каток", Emoji: "⛸", Price: 30, Reward: 10},
		},
		Tasks: []*catalog.TaskSpec{
			{
				Task: domain.Task{ID: 1, PavilionID: 1, Name: "Проверить лёд", Type: "choice", Reward: 999},
				Choice: &catalog.ChoiceSpec{
					Prompt:  "Лёд готов?",
					Options: []catalog.Option{{Value: "yes", Label: "Да"}},
				},
			},
			{
				Task: domain.Task{ID: 2, PavilionID: 77, Name: "Потерянный павильон", Type: "choice", Reward: 5},
				Choice: &catalog.ChoiceSpec{
					Prompt:  "?",
					Options: []catalog.Option{{Value: "yes", Label: "Да"}},
				},
			},
		},
	})

	dispatcher := NewDispatcher(store, registry, nil)

	_, err = store.GetOrCreateUser(ctx, 1, 50)
	require.NoError(t, err)

	res, err := dispatcher.Complete(ctx, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 10, res.Reward)
	assert.EqualValues(t, 60, res.NewBalance)

	// A task pointing at a pavilion the catalog no longer has must fail
	// loudly instead of completing without a payout source.
	_, err = dispatcher.Complete(ctx, 1, 2)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	user, err := store.User(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 60, user.Coins, "the failed completion credits nothing")
}

func TestCompleteUnknownTask(t *testing.T) {
	dispatcher, store := newTestDispatcher(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, 1, 50)
	require.NoError(t, err)

	_, err = dispatcher.Complete(ctx, 1, 999)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestConcurrentCompletions(t *testing.T) {
	dispatcher, store := newTestDispatcher(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, 1, 0)
	require.NoError(t, err)

	// Tasks 1..4 all pay 10; every concurrent completion must land in full.
	taskIDs := []int64{1, 2, 3, 4}
	var wg sync.WaitGroup
	for _, taskID := range taskIDs {
		wg.Add(1)
		go func(taskID int64) {
			defer wg.Done()
			_, err := dispatcher.Complete(ctx, 1, taskID)
			assert.NoError(t, err)
		}(taskID)
	}
	wg.Wait()

	user, err := store.User(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 40, user.Coins)
	assert.EqualValues(t, 4, user.TasksCompleted)
}

func TestCollectFact(t *testing.T) {
	dispatcher, store := newTestDispatcher(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, 1, 50)
	require.NoError(t, err)

	text, err := dispatcher.CollectFact(ctx, 1, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	// Collecting twice keeps the collection a set.
	_, err = dispatcher.CollectFact(ctx, 1, 3)
	require.NoError(t, err)

	user, err := store.User(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, user.FactsCollected)

	_, err = dispatcher.CollectFact(ctx, 1, 999)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
