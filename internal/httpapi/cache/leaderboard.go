package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaderboardKeyPrefix = "leaderboard:top:"

// LeaderboardCache keeps rendered leaderboard pages in Redis so the hot
// read path skips the database. A nil cache (Redis not configured) is a
// pass-through; every method no-ops.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get unmarshals the cached page for the given limit into dest.
// Returns false on miss or when the cache is disabled.
func (c *LeaderboardCache) Get(ctx context.Context, limit int, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, c.key(limit)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, limit int, value any) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(limit), raw, c.ttl).Err()
}

// Invalidate drops every cached page. Called after any transaction that
// changes ranking scores or token counts.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, leaderboardKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *LeaderboardCache) key(limit int) string {
	return fmt.Sprintf("%s%d", leaderboardKeyPrefix, limit)
}
