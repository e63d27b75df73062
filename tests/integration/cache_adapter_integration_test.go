//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/adapters/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapterIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	adapter := cache.NewRedisAdapter(redisClient)
	ctx := context.Background()

	key := "search:school:integration-test"
	require.NoError(t, adapter.Set(ctx, key, []byte(`{"results":[]}`), 60))
	defer adapter.Delete(ctx, key)

	data, err := adapter.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"results":[]}`), data)

	exists, err := adapter.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, adapter.Delete(ctx, key))
	_, err = adapter.Get(ctx, key)
	assert.Error(t, err)
}

func TestRedisCacheAdapterDeletePatternIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	adapter := cache.NewRedisAdapter(redisClient)
	ctx := context.Background()

	keys := map[string]bool{
		"search:school:itest-aaaa":         true,
		"search:school,student:itest-bbbb": true,
		"search:user:itest-cccc":           false,
		"suggest:school:itest-dddd":        false,
	}
	for key := range keys {
		require.NoError(t, adapter.Set(ctx, key, []byte("x"), 60))
		defer adapter.Delete(ctx, key)
	}

	require.NoError(t, adapter.DeletePattern(ctx, "search:*school*itest*"))

	for key, deleted := range keys {
		exists, err := adapter.Exists(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, !deleted, exists, "key %s", key)
	}
}
