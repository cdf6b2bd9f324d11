package cache

import (
	"sync"
	"time"
)

// entry holds a cached value and its insertion time. Entries are immutable
// once inserted; a Set with the same key replaces the entry.
type entry struct {
	data     []byte
	cachedAt time.Time
}

// Memory is a thread-safe in-process TTL cache. The zero value is not
// usable; create instances with NewMemory.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry)}
}

// Get returns the cached value for key, or false if the key is absent or the
// entry is older than ttl. Expired entries are removed lazily.
func (m *Memory) Get(key string, ttl time.Duration) ([]byte, bool) {
	now := time.Now()

	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if now.Sub(e.cachedAt) >= ttl {
		m.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// refreshed the entry in the meantime.
		if cur, exists := m.entries[key]; exists && now.Sub(cur.cachedAt) >= ttl {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}

	return e.data, true
}

// Set stores a value for key, overwriting any previous entry.
func (m *Memory) Set(key string, data []byte) {
	m.mu.Lock()
	m.entries[key] = entry{data: data, cachedAt: time.Now()}
	m.mu.Unlock()
}

// Len returns the number of entries currently held, including ones that
// have expired but not yet been evicted.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
