package session

import (
	"context"
	"sync"
)

type sessionKey struct {
	userID int64
	taskID int64
}

// MemoryStore keeps sessions in a process-local map guarded by a mutex.
// Suitable for single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[sessionKey]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[sessionKey]*Session),
	}
}

// Get returns a copy of the stored session or ErrSessionNotFound.
func (m *MemoryStore) Get(ctx context.Context, userID, taskID int64) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.sessions[sessionKey{userID: userID, taskID: taskID}]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return stored.Clone(), nil
}

// Put overwrites the session for the key.
func (m *MemoryStore) Put(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[sessionKey{userID: s.UserID, taskID: s.TaskID}] = s.Clone()
	return nil
}

// Delete removes the session; deleting an absent key is a no-op.
func (m *MemoryStore) Delete(ctx context.Context, userID, taskID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionKey{userID: userID, taskID: taskID})
	return nil
}

// Count reports the number of live sessions.
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions), nil
}
