package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winterfair/fairbot/internal/domain"
)

func testSession(userID, taskID int64) *Session {
	return &Session{
		UserID:     userID,
		TaskID:     taskID,
		PavilionID: 1,
		Archetype:  domain.ArchetypeSequence,
		Epoch:      1,
		StartedAt:  time.Now().UTC(),
		Sequence:   &SequenceState{Step: 2, Counter: 3, Counts: map[string]int{"red": 1}},
	}
}

func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.Get(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess := testSession(1, 1)
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, sess.Epoch, got.Epoch)
	assert.Equal(t, domain.ArchetypeSequence, got.Archetype)
	require.NotNil(t, got.Sequence)
	assert.Equal(t, 2, got.Sequence.Step)
	assert.Equal(t, map[string]int{"red": 1}, got.Sequence.Counts)

	// Put overwrites unconditionally.
	sess.Epoch = 5
	require.NoError(t, store.Put(ctx, sess))
	got, err = store.Get(ctx, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.Epoch)

	// Same user, different task is a different key.
	require.NoError(t, store.Put(ctx, testSession(1, 2)))
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, store.Delete(ctx, 1, 1))
	_, err = store.Get(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting an absent key is a no-op.
	require.NoError(t, store.Delete(ctx, 1, 1))
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := testSession(7, 7)
	require.NoError(t, store.Put(ctx, sess))

	// Mutating a returned copy must not leak into the store.
	got, err := store.Get(ctx, 7, 7)
	require.NoError(t, err)
	got.Sequence.Counts["red"] = 99
	got.Epoch = 42

	fresh, err := store.Get(ctx, 7, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Sequence.Counts["red"])
	assert.EqualValues(t, 1, fresh.Epoch)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	runStoreContract(t, NewRedisStore(client, nil))
}

func TestRedisStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, nil)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSession(1, 1)))

	mr.FastForward(sessionTTL + time.Minute)

	_, err := store.Get(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
