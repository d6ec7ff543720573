package session

import (
	"context"
	"errors"
)

// ErrSessionNotFound indicates that no session exists for the key.
var ErrSessionNotFound = errors.New("task session not found")

// Store defines the persistence contract for task sessions.
//
// Put overwrites unconditionally; Delete is idempotent. There is no
// cross-session transactionality: each task attempt is scoped to one
// (user, task) key.
type Store interface {
	// Get returns the session for the key or ErrSessionNotFound.
	Get(ctx context.Context, userID, taskID int64) (*Session, error)
	// Put saves the session, replacing any previous one for the key.
	Put(ctx context.Context, s *Session) error
	// Delete removes the session for the key; absence is not an error.
	Delete(ctx context.Context, userID, taskID int64) error
	// Count reports the number of live sessions, for metrics.
	Count(ctx context.Context) (int, error)
}
