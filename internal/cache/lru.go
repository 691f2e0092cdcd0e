package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultLRUSize is used when no positive size is configured.
const DefaultLRUSize = 10000

// LRUClient is a size-bounded in-process cache evicting the least recently
// used entry first.
type LRUClient struct {
	cache *lru.Cache[string, memoryEntry]
}

// NewLRUClient creates an LRU cache holding at most size entries.
func NewLRUClient(size int) (*LRUClient, error) {
	if size <= 0 {
		size = DefaultLRUSize
	}

	c, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &LRUClient{cache: c}, nil
}

// Get retrieves a value from cache.
func (c *LRUClient) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := c.cache.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if expired(entry.expiresAt) {
		c.cache.Remove(key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores a copy of value under key.
func (c *LRUClient) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	c.cache.Add(key, memoryEntry{value: buf, expiresAt: expiry(ttl)})
	return nil
}

// Delete removes a value from cache.
func (c *LRUClient) Delete(_ context.Context, key string) error {
	c.cache.Remove(key)
	return nil
}

// DeleteByPrefix removes all keys with the given prefix.
func (c *LRUClient) DeleteByPrefix(_ context.Context, prefix string) error {
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Remove(key)
		}
	}
	return nil
}

// Len reports the number of stored entries.
func (c *LRUClient) Len() int {
	return c.cache.Len()
}

// Close purges the cache.
func (c *LRUClient) Close() error {
	c.cache.Purge()
	return nil
}
