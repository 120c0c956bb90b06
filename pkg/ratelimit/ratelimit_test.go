package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"finis-oculus/pkg/common"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, rpm int, now func() time.Time) (*redisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisLimiter(client, rpm).(*redisLimiter)
	limiter.now = now
	return limiter, mr
}

func TestAllowCountsWithinWindow(t *testing.T) {
	at := time.Date(2024, time.March, 15, 14, 30, 10, 0, time.UTC)
	limiter, mr := newTestLimiter(t, 3, func() time.Time { return at })
	ctx := context.Background()

	var remaining []int
	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, "203.0.113.9")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 3, res.Limit)
		remaining = append(remaining, res.Remaining)
	}
	assert.Equal(t, []int{2, 1, 0}, remaining)

	res, err := limiter.Allow(ctx, "203.0.113.9")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Date(2024, time.March, 15, 14, 31, 0, 0, time.UTC), res.ResetAt.UTC())

	key := fmt.Sprintf(common.RedisKeyRateLimit, "203.0.113.9", at.Unix()/60)
	assert.Equal(t, 60*time.Second, mr.TTL(key))
}

func TestAllowKeysAreIndependent(t *testing.T) {
	at := time.Date(2024, time.March, 15, 14, 30, 10, 0, time.UTC)
	limiter, _ := newTestLimiter(t, 1, func() time.Time { return at })
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	second, err := limiter.Allow(ctx, "198.51.100.2")
	require.NoError(t, err)

	assert.True(t, first.Allowed)
	assert.True(t, second.Allowed)
}

func TestAllowRollsOverToNextWindow(t *testing.T) {
	at := time.Date(2024, time.March, 15, 14, 30, 50, 0, time.UTC)
	limiter, _ := newTestLimiter(t, 1, func() time.Time { return at })
	ctx := context.Background()

	res, err := limiter.Allow(ctx, "203.0.113.9")
	require.NoError(t, err)
	require.True(t, res.Allowed)
	res, err = limiter.Allow(ctx, "203.0.113.9")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	at = at.Add(15 * time.Second)
	res, err = limiter.Allow(ctx, "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Date(2024, time.March, 15, 14, 32, 0, 0, time.UTC), res.ResetAt.UTC())
}

func TestAllowReportsRedisFailure(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Now)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "203.0.113.9")
	assert.Error(t, err)
}
