package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"galaxy-server/internal/shared/redis"
)

// ErrTooLarge is returned by Set when the value exceeds the configured cap.
var ErrTooLarge = errors.New("cache value exceeds size limit")

// Cache stores opaque byte snapshots with an expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// New picks the Redis backend when a client is available and the in-memory
// one otherwise.
func New(client *redis.Client, maxBytes int) Cache {
	if client == nil {
		slog.With("component", "cache").Info("Using in-memory cache", "max_bytes", maxBytes)
		return NewMemory(maxBytes)
	}
	slog.With("component", "cache").Info("Using Redis cache", "max_bytes", maxBytes)
	return NewRedis(client, maxBytes)
}

func checkSize(value []byte, maxBytes int) error {
	if maxBytes > 0 && len(value) > maxBytes {
		return fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(value), maxBytes)
	}
	return nil
}

type RedisCache struct {
	client   *redis.Client
	maxBytes int
}

func NewRedis(client *redis.Client, maxBytes int) *RedisCache {
	return &RedisCache{client: client, maxBytes: maxBytes}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := checkSize(value, c.maxBytes); err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s to redis: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from redis: %w", key, err)
	}
	return nil
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type MemoryCache struct {
	mutex    sync.RWMutex
	entries  map[string]memoryEntry
	maxBytes int
	now      func() time.Time
}

func NewMemory(maxBytes int) *MemoryCache {
	return &MemoryCache{
		entries:  make(map[string]memoryEntry),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mutex.RLock()
	entry, ok := c.entries[key]
	c.mutex.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.evict(key, entry.expiresAt)
		return nil, false, nil
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

// evict removes key only if it still holds the entry that expired at
// expiresAt, so a Set racing with Get is kept.
func (c *MemoryCache) evict(key string, expiresAt time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if current, ok := c.entries[key]; ok && current.expiresAt.Equal(expiresAt) {
		delete(c.entries, key)
	}
}

// Set stores a copy of value. A zero ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if err := checkSize(value, c.maxBytes); err != nil {
		return err
	}

	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mutex.Lock()
	c.entries[key] = entry
	c.mutex.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mutex.Lock()
	delete(c.entries, key)
	c.mutex.Unlock()
	return nil
}
