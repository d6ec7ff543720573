// Package idempotency deduplicates Telegram updates so a handler runs at
// most once per update key even when Telegram redelivers.
package idempotency

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager marks update keys as seen. First reports true exactly once per
// key within the TTL window.
type Manager interface {
	First(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Setter is the single Redis operation the manager needs; both the plain
// and the instrumented client satisfy it.
type Setter interface {
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
}

type redisManager struct {
	client Setter
	log    *slog.Logger
}

// NewRedisManager builds a Redis-backed manager. SETNX gives the
// first-writer-wins semantics across bot replicas.
func NewRedisManager(client Setter, log *slog.Logger) Manager {
	if log == nil {
		log = slog.Default()
	}

	return &redisManager{client: client, log: log}
}

func (m *redisManager) First(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return m.client.SetNX(ctx, "idem:"+key, 1, ttl)
}

type memoryManager struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewMemoryManager builds the in-process fallback used when Redis is
// disabled. Expired keys are swept lazily on access.
func NewMemoryManager() Manager {
	return &memoryManager{seen: make(map[string]time.Time)}
}

func (m *memoryManager) First(_ context.Context, key string, ttl time.Duration) (bool, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.seen) > 4096 {
		for k, deadline := range m.seen {
			if deadline.Before(now) {
				delete(m.seen, k)
			}
		}
	}

	if deadline, ok := m.seen[key]; ok && deadline.After(now) {
		return false, nil
	}

	m.seen[key] = now.Add(ttl)
	return true, nil
}
