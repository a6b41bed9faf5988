package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fivetwenty-io/concourse-client/internal/constants"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// NewFromConfig creates a cache backend from configuration. A nil config
// disables caching.
func NewFromConfig(config *concourse.CacheConfig) (Cache, error) {
	if config == nil {
		return NewNoOpCache(), nil
	}

	switch config.Type {
	case concourse.CacheTypeNone, "":
		return NewNoOpCache(), nil

	case concourse.CacheTypeMemory:
		maxSize := config.MaxSize
		if maxSize == 0 {
			maxSize = constants.DefaultCacheSize
		}

		return NewMemoryCache(maxSize), nil

	case concourse.CacheTypeNATS:
		bucket := config.NATSBucket
		if bucket == "" {
			bucket = constants.DefaultNATSBucket
		}

		return NewNATSKVCache(&NATSKVConfig{
			URL:    config.NATSURL,
			Bucket: bucket,
			TTL:    ttlOrDefault(config.TTL),
		})

	default:
		return nil, fmt.Errorf("%w: %s", concourse.ErrUnsupportedCacheType, config.Type)
	}
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return constants.DefaultCacheTTL
	}

	return ttl
}

// Stats counts cache activity.
type Stats struct {
	Hits          int64
	Misses        int64
	Sets          int64
	Invalidations int64
}

// HitRate returns hits as a fraction of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// Manager wraps a backend with key derivation, TTL handling and counters.
type Manager struct {
	cache Cache
	ttl   time.Duration

	hits          atomic.Int64
	misses        atomic.Int64
	sets          atomic.Int64
	invalidations atomic.Int64
}

// NewManager creates a manager over cache. A nil cache disables caching
// and a non-positive ttl selects the default.
func NewManager(cache Cache, ttl time.Duration) *Manager {
	if cache == nil {
		cache = NewNoOpCache()
	}

	return &Manager{cache: cache, ttl: ttlOrDefault(ttl)}
}

// GetCacheKey derives the key of a request made with the given
// Authorization header value. Entries are only shared between callers
// presenting the same credential; the credential itself is stored hashed.
func (m *Manager) GetCacheKey(method, url, authorization string) string {
	key := method + ":" + url
	if authorization == "" {
		return key
	}

	return key + ":" + Key(authorization)
}

// Get returns the cached body for key.
func (m *Manager) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := m.cache.Get(ctx, key)
	if err != nil {
		m.misses.Add(1)

		return nil, err
	}

	m.hits.Add(1)

	return entry.Data, nil
}

// Set stores data under key for the manager's TTL.
func (m *Manager) Set(ctx context.Context, key string, data []byte) error {
	if len(data) > constants.MaxCacheValueSize {
		return ErrValueTooLarge
	}

	err := m.cache.Set(ctx, key, &Entry{Data: data, ExpiresAt: time.Now().Add(m.ttl)})
	if err != nil {
		return err
	}

	m.sets.Add(1)

	return nil
}

// Invalidate removes every key, returning the first failure.
func (m *Manager) Invalidate(ctx context.Context, keys ...string) error {
	var firstErr error

	for _, key := range keys {
		err := m.cache.Delete(ctx, key)
		if err != nil && firstErr == nil {
			firstErr = err
		}

		m.invalidations.Add(1)
	}

	return firstErr
}

// Stats returns a snapshot of the counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Hits:          m.hits.Load(),
		Misses:        m.misses.Load(),
		Sets:          m.sets.Load(),
		Invalidations: m.invalidations.Load(),
	}
}

// Close releases the backend if it holds resources.
func (m *Manager) Close() error {
	if closer, ok := m.cache.(interface{ Close() error }); ok {
		return closer.Close()
	}

	return nil
}
