package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	appcatalog "github.com/intercel/backend/internal/application/catalog"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryProjectionCache implements ProjectionCache inside the process.
// Entries are kept as JSON so callers always decode a private copy.
type InMemoryProjectionCache struct {
	entries sync.Map // map[string]*cacheEntry
	incrMu  sync.Mutex
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// cacheEntry wraps a cached value with its expiration time
type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e *cacheEntry) isExpired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// CacheStats reports hit and miss counters
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// NewInMemoryProjectionCache creates a cache and starts its expiry sweeper
func NewInMemoryProjectionCache() *InMemoryProjectionCache {
	c := &InMemoryProjectionCache{stopCh: make(chan struct{})}
	go c.cleanupExpired(defaultCleanupInterval)
	return c
}

// Get loads the value stored under key into dest
func (c *InMemoryProjectionCache) Get(_ context.Context, key string, dest any) (bool, error) {
	value, ok := c.entries.Load(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return false, nil
	}
	entry := value.(*cacheEntry)
	if entry.isExpired(time.Now()) {
		c.entries.Delete(key)
		atomic.AddInt64(&c.misses, 1)
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	atomic.AddInt64(&c.hits, 1)
	return true, nil
}

// Set stores value under key. A zero ttl keeps the entry until it is deleted.
func (c *InMemoryProjectionCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	entry := &cacheEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.entries.Store(key, entry)
	return nil
}

// Delete removes the given keys
func (c *InMemoryProjectionCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.entries.Delete(k)
	}
	return nil
}

// Increment adds one to the counter under key. The counter never expires.
func (c *InMemoryProjectionCache) Increment(_ context.Context, key string) (int64, error) {
	c.incrMu.Lock()
	defer c.incrMu.Unlock()

	var n int64
	if value, ok := c.entries.Load(key); ok {
		if err := json.Unmarshal(value.(*cacheEntry).data, &n); err != nil {
			return 0, fmt.Errorf("cache key %s does not hold a counter: %w", key, err)
		}
	}
	n++
	c.entries.Store(key, &cacheEntry{data: []byte(strconv.FormatInt(n, 10))})
	return n, nil
}

// Stats returns the hit and miss counters
func (c *InMemoryProjectionCache) Stats() CacheStats {
	return CacheStats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
	}
}

// Close stops the expiry sweeper. It is safe to call more than once.
func (c *InMemoryProjectionCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *InMemoryProjectionCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*cacheEntry).isExpired(now) {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

// Ensure InMemoryProjectionCache implements ProjectionCache
var _ appcatalog.ProjectionCache = (*InMemoryProjectionCache)(nil)
