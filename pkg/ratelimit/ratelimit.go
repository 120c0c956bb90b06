package ratelimit

import (
	"context"
	"fmt"
	"time"

	"finis-oculus/pkg/common"

	goredis "github.com/redis/go-redis/v9"
)

// Result is the outcome of one rate limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// fixedWindowScript counts hits in the current one-minute window and
// expires the counter with it.
var fixedWindowScript = goredis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return current
`)

type redisLimiter struct {
	client            goredis.Scripter
	requestsPerMinute int
	now               func() time.Time
}

// NewRedisLimiter creates a fixed-window limiter allowing
// requestsPerMinute hits per key per minute.
func NewRedisLimiter(client goredis.Scripter, requestsPerMinute int) Limiter {
	return &redisLimiter{client: client, requestsPerMinute: requestsPerMinute, now: time.Now}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now()
	window := now.Unix() / 60
	resetAt := time.Unix((window+1)*60, 0)
	windowKey := fmt.Sprintf(common.RedisKeyRateLimit, key, window)

	count, err := fixedWindowScript.Run(ctx, l.client, []string{windowKey}, 60).Int()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}

	remaining := l.requestsPerMinute - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= l.requestsPerMinute,
		Limit:     l.requestsPerMinute,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
