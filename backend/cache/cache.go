// ABOUTME: In-memory artifact store with TTL-based expiration
// ABOUTME: Thread-safe store using sync.Map; values are held as encoded JSON

package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Cache is an in-memory Store whose entries expire after a TTL
type Cache struct {
	store sync.Map
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache and starts its background cleanup
func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Load decodes the value stored under key into out
func (c *Cache) Load(key string, out any) (bool, error) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return false, nil
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return false, nil
	}

	if err := json.Unmarshal(e.data, out); err != nil {
		return false, fmt.Errorf("decoding cached %s: %w", key, err)
	}
	slog.Debug("Cache hit", "key", key)
	return true, nil
}

// Save stores value under key with the cache's TTL
func (c *Cache) Save(key string, value any) error {
	return c.SaveWithTTL(key, value, c.ttl)
}

// SaveWithTTL stores a value with a custom TTL
func (c *Cache) SaveWithTTL(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	c.store.Store(key, entry{data: data, expiresAt: time.Now().Add(ttl)})
	slog.Debug("Cache set", "key", key, "ttl", ttl)
	return nil
}

// Clear removes one key
func (c *Cache) Clear(key string) {
	c.store.Delete(key)
}

// Close stops the cleanup goroutine
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, val any) bool {
				e := val.(entry)
				if now.After(e.expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
