// Package cache provides the pluggable key/value backends used to memoize
// station datasets and search results.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// Client defines the cache interface. A ttl of zero stores the value until
// it is deleted or the backend is cleared.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}

// Driver names accepted by New.
const (
	DriverMemory = "memory"
	DriverLRU    = "lru"
	DriverRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Driver     string
	MaxEntries int
	Redis      RedisConfig
}

// New builds the backend named by cfg.Driver.
func New(cfg Config) (Client, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemoryClient(), nil
	case DriverLRU:
		return NewLRUClient(cfg.MaxEntries)
	case DriverRedis:
		return NewRedisClient(cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// Key joins key components with the '|' separator.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

func expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

func expired(at time.Time) bool {
	return !at.IsZero() && time.Now().After(at)
}
