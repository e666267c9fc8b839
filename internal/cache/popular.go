package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dinefind/dinefind/internal/domain"
)

const popularKeyPrefix = "dinefind:popular:"

// PopularCache caches the most-reviewed restaurant listing in Redis, keyed by
// requested limit. It is invalidated after every aggregate recompute, so a
// cached listing never outlives a rating change by more than its TTL.
type PopularCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPopularCache creates a Redis-backed popular-restaurants cache.
func NewPopularCache(client *redis.Client, ttl time.Duration) *PopularCache {
	return &PopularCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached listing for the limit and whether it was present.
func (c *PopularCache) Get(ctx context.Context, limit int) ([]domain.Restaurant, bool, error) {
	data, err := c.client.Get(ctx, popularKeyPrefix+strconv.Itoa(limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get popular: %w", err)
	}

	var restaurants []domain.Restaurant
	if err := json.Unmarshal(data, &restaurants); err != nil {
		return nil, false, fmt.Errorf("unmarshal popular listing: %w", err)
	}

	return restaurants, true, nil
}

// Set stores the listing for the limit with the configured TTL.
func (c *PopularCache) Set(ctx context.Context, limit int, restaurants []domain.Restaurant) error {
	data, err := json.Marshal(restaurants)
	if err != nil {
		return fmt.Errorf("marshal popular listing: %w", err)
	}

	if err := c.client.Set(ctx, popularKeyPrefix+strconv.Itoa(limit), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set popular: %w", err)
	}

	return nil
}

// Invalidate drops every cached popular listing regardless of limit.
func (c *PopularCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, popularKeyPrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan popular keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del popular keys: %w", err)
	}

	return nil
}
