// Package cache is a TTL-bounded in-memory store shared by the fetch
// orchestrator (keyed by request shape) and the summary client (keyed by
// prompt text).
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

type Item struct {
	Value     interface{}
	StoredAt  time.Time
	ExpiresAt time.Time
}

type Cache struct {
	mu    sync.RWMutex
	items map[string]Item
}

func New() *Cache {
	c := &Cache{
		items: make(map[string]Item),
	}

	// Sweep expired entries every hour
	go c.cleanupLoop()

	return c
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Value:     value,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Now().After(item.ExpiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}

	return item.Value, true
}

// Delete removes a single entry, expired or not.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len reports the number of stored entries, including not-yet-swept
// expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// HashKey digests an arbitrarily long text into a stable cache key.
func HashKey(text string) string {
	h := sha256.New()
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.ExpiresAt) {
			delete(c.items, key)
		}
	}
}
