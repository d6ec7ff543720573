package engine

import "sync"

type sessionKey struct {
	userID int64
	taskID int64
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex serializes event processing per (user, task) key. Entries
// are reference counted and dropped when the last holder releases, so
// the map does not grow with the user base.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[sessionKey]*lockEntry
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[sessionKey]*lockEntry)}
}

// lock blocks until the key is owned and returns the release func.
func (k *keyedMutex) lock(userID, taskID int64) func() {
	key := sessionKey{userID: userID, taskID: taskID}

	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &lockEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
