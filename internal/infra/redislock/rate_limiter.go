package redislock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter is a fixed-window counter per subject.
type RateLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(client redis.UniversalClient, scope string, limit int, window time.Duration) *RateLimiter {
	scope = strings.TrimSuffix(strings.TrimSpace(scope), ":")
	if scope == "" {
		scope = "holds"
	}
	return &RateLimiter{
		client: client,
		prefix: "rate_limit:" + scope,
		limit:  limit,
		window: window,
	}
}

func (r *RateLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	subject = strings.TrimSpace(subject)
	if r.limit <= 0 || r.window <= 0 || subject == "" {
		return true, nil
	}

	windowMs := max(r.window.Milliseconds(), 1000)
	key := fmt.Sprintf("%s:%s", r.prefix, subject)
	count, err := rateLimitScript.Run(ctx, r.client, []string{key}, windowMs).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", subject, err)
	}
	return count <= int64(r.limit), nil
}
