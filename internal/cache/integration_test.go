//go:build integration

package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/rumiadrian30/techdivulga/internal/config"
)

func TestRedis_Integration(t *testing.T) {
	ctx := context.Background()

	rc, err := redis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := rc.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	})

	uri, err := rc.ConnectionString(ctx)
	require.NoError(t, err)

	c, err := New(config.CacheConfig{
		Driver: "redis",
		Redis:  config.RedisConfig{Addr: strings.TrimPrefix(uri, "redis://"), Prefix: "it:"},
	})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, SessionKey("s1"), []byte(`{"id":"s1"}`), time.Minute))
	require.NoError(t, c.Set(ctx, SessionKey("s2"), []byte(`{"id":"s2"}`), time.Minute))
	require.NoError(t, c.Set(ctx, ContentStatsKey(), []byte(`{}`), time.Minute))

	got, err := c.Get(ctx, SessionKey("s1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s1"}`, string(got))

	require.NoError(t, c.DeleteByPrefix(ctx, "chat:"))
	_, err = c.Get(ctx, SessionKey("s2"))
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = c.Get(ctx, ContentStatsKey())
	assert.NoError(t, err)
}
