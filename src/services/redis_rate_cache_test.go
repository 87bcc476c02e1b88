package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisRateCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cache, err := NewRedisRateCache(ctx, "127.0.0.1:1", "", 0)
	assert.Nil(t, cache)
	assert.ErrorContains(t, err, "failed to connect to Redis at 127.0.0.1:1")
}

// Needs a running Redis, e.g. REDIS_TEST_ADDR=localhost:6379.
func TestRedisRateCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()

	cache, err := NewRedisRateCache(ctx, addr, os.Getenv("REDIS_TEST_PASSWORD"), 0)
	require.NoError(t, err)
	defer cache.Close()

	key := "fx-test-" + uuid.NewString()
	_, found, err := cache.GetRate(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.SetRate(ctx, key, 0.9157, time.Minute))
	rate, found, err := cache.GetRate(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0.9157, rate)
}
