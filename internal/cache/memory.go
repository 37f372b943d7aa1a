package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/caldera-labs/itemfetch/transport"
)

type memoryEntry struct {
	response  *transport.Response
	expiresAt time.Time
}

// Memory is a thread-safe in-memory cache with per-entry TTL expiration.
//
// Expiration is lazy: an expired entry is detected and evicted on the Get
// that observes it, there is no background sweep. There is also no size
// bound or eviction policy beyond TTL, so a long-lived process caching many
// distinct keys grows without limit. Both are accepted limitations for the
// short-lived, small-key-space workloads this cache serves.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemory creates a new in-memory TTL cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get returns the cached response for key, or false if missing or expired.
// An entry is visible while the current time is at or before its expiry;
// once past it, the entry is removed as a side effect of the lookup.
func (m *Memory) Get(key string) (*transport.Response, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return entry.response, true
}

// Set stores a response under key for the given TTL. The key must be
// non-empty and the TTL positive; violations return ErrInvalidArgument
// rather than being accepted silently.
func (m *Memory) Set(key string, resp *transport.Response, ttl time.Duration) error {
	if key == "" {
		return fmt.Errorf("empty key: %w", ErrInvalidArgument)
	}
	if ttl <= 0 {
		return fmt.Errorf("non-positive ttl %v: %w", ttl, ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		response:  resp,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Remove deletes an entry unconditionally. Removing an absent key is a no-op.
func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Len returns the number of entries currently in the cache, including any
// expired entries not yet evicted by a read.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Clear removes all entries from the cache.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
}
