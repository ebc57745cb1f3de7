package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "marketplace:"

// Cache stores JSON read models in Redis. A nil *Cache behaves as an always-miss cache.
type Cache struct {
	client *redis.Client
}

// New wraps client.
func New(client *redis.Client) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client}
}

// GetJSON loads key into dest. It reports false on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value under key for ttl.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, raw, ttl).Err()
}

// Delete removes keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	return c.client.Del(ctx, prefixed...).Err()
}

// Claim sets key only if absent and reports whether this caller won it.
// Without a backing client every claim succeeds.
func (c *Cache) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if c == nil {
		return true, nil
	}
	return c.client.SetNX(ctx, keyPrefix+key, "1", ttl).Result()
}

// Key builders.

func FeaturedVendorsKey() string { return "vendors:featured" }

func VendorDetailsKey(vendorID string) string { return "vendors:details:" + vendorID }

func DashboardStatsKey() string { return "admin:dashboard" }

func ReminderKey(kind, id string) string { return "reminders:" + kind + ":" + id }
