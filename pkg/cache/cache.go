package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLPosts   = 30 * time.Second // public post listings (refreshed often)
	TTLStats   = 1 * time.Minute  // admin dashboard stats
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixPosts = "posts:"
	PrefixStats = "stats:"
)

// Service is the Redis cache layer. Every method tolerates a missing entry;
// callers fall through to the database on any error.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Public post listing pages
	GetPostPage(ctx context.Context, page, limit int) ([]byte, error)
	SetPostPage(ctx context.Context, page, limit int, data interface{}) error
	InvalidatePostPages(ctx context.Context) error

	// Admin post stats
	GetStats(ctx context.Context) ([]byte, error)
	SetStats(ctx context.Context, data interface{}) error
	InvalidateStats(ctx context.Context) error

	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a Redis-backed cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func postPageKey(page, limit int) string {
	return fmt.Sprintf("%spage:%d:%d", PrefixPosts, page, limit)
}

func (c *redisCache) GetPostPage(ctx context.Context, page, limit int) ([]byte, error) {
	return c.client.Get(ctx, postPageKey(page, limit)).Bytes()
}

func (c *redisCache) SetPostPage(ctx context.Context, page, limit int, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, postPageKey(page, limit), payload, TTLPosts).Err()
}

func (c *redisCache) InvalidatePostPages(ctx context.Context) error {
	return c.deleteByPrefix(ctx, PrefixPosts)
}

func (c *redisCache) GetStats(ctx context.Context) ([]byte, error) {
	return c.client.Get(ctx, PrefixStats+"posts").Bytes()
}

func (c *redisCache) SetStats(ctx context.Context, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PrefixStats+"posts", payload, TTLStats).Err()
}

func (c *redisCache) InvalidateStats(ctx context.Context) error {
	return c.client.Del(ctx, PrefixStats+"posts").Err()
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// deleteByPrefix scans and deletes keys in batches; the key space per prefix is
// small (one entry per listing page), so SCAN is not a hot path here.
func (c *redisCache) deleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}
