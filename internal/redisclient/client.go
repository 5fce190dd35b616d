package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inventory-service/internal/models"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when a key is not cached
var ErrCacheMiss = errors.New("cache miss")

const (
	categoryTreeKey = "catalog:category:tree"
	eventKeyPrefix  = "catalog:event:"
)

// ProductSlugKey is the cache key of a product looked up by slug
func ProductSlugKey(slug string) string {
	return fmt.Sprintf("catalog:product:slug:%s", slug)
}

// CategoryTreeKey is the cache key of the category tree
func CategoryTreeKey() string {
	return categoryTreeKey
}

// InvalidationKeys returns the cache keys made stale by a change to one catalog row
func InvalidationKeys(entity, slug string) []string {
	switch entity {
	case models.EntityCategory:
		return []string{categoryTreeKey}
	case models.EntityProduct:
		if slug != "" {
			return []string{ProductSlugKey(slug)}
		}
	}
	return nil
}

type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client; cached entries expire after ttl
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetJSON decodes the cached value of key into dest
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}

// SetJSON caches value under key for the client TTL
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Delete removes the given keys
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// EventSeen reports whether an event ID was recorded by MarkEventSeen
func (c *Client) EventSeen(ctx context.Context, eventID string) (bool, error) {
	n, err := c.rdb.Exists(ctx, eventKeyPrefix+eventID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkEventSeen records a handled event ID for ttl
func (c *Client) MarkEventSeen(ctx context.Context, eventID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, eventKeyPrefix+eventID, "1", ttl).Err()
}
