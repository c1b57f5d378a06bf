// Package cache implements the Cache Adapter (spec.md §4, §6) over
// Redis: typed get/set with TTL, iterative pattern-based invalidation
// via SCAN (never the blocking KEYS command), and set membership for
// safety-filter lookups (block/pass/resonate sets).
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/resonate/core/internal/logger"
)

const scanBatchSize = 200

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string, out any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	// ttl==0 means "no expiry" both here and in spec.md §6's convention;
	// go-redis's own zero value for Set already means no expiration.
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: delete %s: %w", key, err)
	}
	return nil
}

// ScanDelete implements the non-blocking pattern invalidation spec.md
// §6 requires: iterate with SCAN, pipeline DELs in batches, and never
// touch KEYS (which would stall Redis under a large keyspace).
func (c *RedisCache) ScanDelete(ctx context.Context, pattern string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return deleted, fmt.Errorf("cache: scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			pipe := c.client.Pipeline()
			for _, k := range keys {
				pipe.Del(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				return deleted, fmt.Errorf("cache: pipelined delete %s: %w", pattern, err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	logger.Debug(ctx, "cache scan-delete complete", "pattern", pattern, "deleted", deleted)
	return deleted, nil
}

func (c *RedisCache) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	ifaces := make([]any, len(members))
	for i, m := range members {
		ifaces[i] = m
	}
	if err := c.client.SAdd(ctx, key, ifaces...).Err(); err != nil {
		return fmt.Errorf("cache: sadd %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) SIsMember(ctx context.Context, key, member string) (bool, error) {
	ok, err := c.client.SIsMember(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("cache: sismember %s: %w", key, err)
	}
	return ok, nil
}

func (c *RedisCache) SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := c.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: smembers %s: %w", key, err)
	}
	return members, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Key builds the resonate:{entity}:{id}:{dataType} convention from
// spec.md §6.
func Key(entity, id, dataType string) string {
	return fmt.Sprintf("resonate:%s:%s:%s", entity, id, dataType)
}

// InvalidateUserPattern invalidates every cached artifact for a user,
// the pattern RPB's rebuild orchestration invalidates after each
// profile commit (spec.md §4.2, §5 ordering guarantee).
func InvalidateUserPattern(ctx context.Context, c *RedisCache, userID string) (int, error) {
	return c.ScanDelete(ctx, fmt.Sprintf("resonate:user:%s:*", userID))
}
