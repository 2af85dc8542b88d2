package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// allowScript implements a fixed window counter. It returns {allowed, count}.
var allowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return {0, current}
end
return {1, current}
`)

// RateLimiter counts requests per key in fixed windows.
// Key format: <prefix>:<key>
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	if prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow records one hit for key and reports whether it is within the limit.
// When rejected, retryAfter is the remaining lifetime of the window.
func (l *RateLimiter) Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error) {
	k := fmt.Sprintf("%s:%s", l.prefix, key)

	res, err := allowScript.Run(ctx, l.client, []string{k}, l.window.Milliseconds(), l.limit).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit: %w", err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("rate limit: unexpected script reply %v", res)
	}
	if res[0] == 1 {
		return true, 0, nil
	}

	ttl, err := l.client.PTTL(ctx, k).Result()
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return false, ttl, nil
}
