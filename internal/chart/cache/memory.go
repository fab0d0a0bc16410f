package cache

import (
	"context"
	"sync"
	"time"

	"jyotish/pkg/platform/sentinel"
)

// InMemory is a process-local Cache for single-instance deployments and
// tests. Expired entries are dropped lazily on read.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewInMemory creates an empty in-process cache.
func NewInMemory() *InMemory {
	return &InMemory{
		entries: make(map[string]memoryEntry),
		clock:   time.Now,
	}
}

// NewInMemoryWithClock creates a cache with an injected clock for tests.
func NewInMemoryWithClock(clock func() time.Time) *InMemory {
	c := NewInMemory()
	c.clock = clock
	return c
}

func (c *InMemory) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if c.clock().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (c *InMemory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	c.entries[key] = memoryEntry{
		value:     stored,
		expiresAt: c.clock().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}
