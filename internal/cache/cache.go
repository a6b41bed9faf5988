// Package cache stores GET responses of the default transport.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrKeyNotFound        = errors.New("key not found")
	ErrEntryExpired       = errors.New("entry expired")
	ErrCacheDisabled      = errors.New("cache disabled")
	ErrNATSConfigRequired = errors.New("NATS URL required for NATS cache")
	ErrValueTooLarge      = errors.New("value exceeds maximum cache value size")
)

// Entry is one cached response body.
type Entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry at now.
func (e *Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Cache is a key/value store for response bodies.
type Cache interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// MemoryCache keeps entries in process memory.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	maxSize int
	now     func() time.Time
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
// A non-positive maxSize means unbounded.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*Entry),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the entry for key.
func (c *MemoryCache) Get(ctx context.Context, key string) (*Entry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrKeyNotFound
	}

	if entry.Expired(c.now()) {
		_ = c.Delete(ctx, key)

		return nil, ErrEntryExpired
	}

	return entry, nil
}

// Set stores entry under key, evicting the entry closest to expiry when full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}

	c.entries[key] = entry

	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]*Entry)
	c.mu.Unlock()

	return nil
}

// Has reports whether an unexpired entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]

	return ok && !entry.Expired(c.now())
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Cleanup drops expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
		}
	}
}

func (c *MemoryCache) evictLocked() {
	var (
		victim string
		oldest time.Time
		found  bool
	)

	for key, entry := range c.entries {
		if !found || entry.ExpiresAt.Before(oldest) {
			victim = key
			oldest = entry.ExpiresAt
			found = true
		}
	}

	if found {
		delete(c.entries, victim)
	}
}

// NoOpCache is a cache that does nothing (no caching).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns an error (nothing cached).
func (c *NoOpCache) Get(ctx context.Context, key string) (*Entry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *Entry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}
