package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string
	Count int
}

func setupTestRedis(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mr
}

func TestCacheJSONRoundTrip(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	var out payload
	hit, err := c.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, "k", payload{Name: "a", Count: 2}, time.Minute))
	assert.True(t, mr.Exists(keyPrefix+"k"))

	hit, err = c.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "a", Count: 2}, out)

	mr.FastForward(2 * time.Minute)
	hit, err = c.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheDelete(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, FeaturedVendorsKey(), []string{"v1"}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, VendorDetailsKey("v1"), "x", time.Minute))
	require.NoError(t, c.Delete(ctx, FeaturedVendorsKey(), VendorDetailsKey("v1")))

	assert.False(t, mr.Exists(keyPrefix+FeaturedVendorsKey()))
	assert.False(t, mr.Exists(keyPrefix+VendorDetailsKey("v1")))
}

func TestCacheClaim(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()

	won, err := c.Claim(ctx, ReminderKey("payment", "c1"), time.Hour)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = c.Claim(ctx, ReminderKey("payment", "c1"), time.Hour)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestNilCache(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	hit, err := c.GetJSON(ctx, "k", &payload{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.SetJSON(ctx, "k", 1, time.Second))
	assert.NoError(t, c.Delete(ctx, "k"))

	won, err := c.Claim(ctx, "k", time.Second)
	assert.NoError(t, err)
	assert.True(t, won)
}
