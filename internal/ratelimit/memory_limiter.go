package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is the in-process sliding-window limiter used when Redis
// is disabled. State is per replica.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter returns an in-memory limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string][]time.Time)}
}

// Check enforces a sliding-window limit for the provided key.
func (m *MemoryLimiter) Check(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := time.Now()
	cutoff := now.Add(-window)

	m.mu.Lock()
	defer m.mu.Unlock()

	recent := trimExpired(m.windows[key], cutoff)

	allowed := len(recent) < limit
	if allowed {
		recent = append(recent, now)
	}
	m.windows[key] = recent

	remaining := limit - len(recent)
	if remaining < 0 {
		remaining = 0
	}

	result := &Result{
		Allowed:   allowed,
		Remaining: remaining,
		ResetAt:   cutoff.Add(window),
	}

	if !allowed {
		return result, ErrLimitExceeded
	}

	return result, nil
}

// Cleanup drops keys whose whole window has expired.
func (m *MemoryLimiter) Cleanup(maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}

	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, hits := range m.windows {
		if len(hits) == 0 || hits[len(hits)-1].Before(cutoff) {
			delete(m.windows, key)
		}
	}
}

func trimExpired(hits []time.Time, cutoff time.Time) []time.Time {
	first := 0
	for first < len(hits) && hits[first].Before(cutoff) {
		first++
	}

	if first == 0 {
		return hits
	}
	if first >= len(hits) {
		return hits[:0]
	}

	copy(hits, hits[first:])
	return hits[:len(hits)-first]
}
