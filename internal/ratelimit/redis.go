package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a sliding-window limiter backed by a shared Redis, for deployments
// running more than one replica. Each identity maps to a sorted set whose
// members are admission timestamps scored by unix nanoseconds; expired
// members are trimmed before counting, mirroring the in-memory semantics.
//
// The trim/count/record sequence runs inside a single Lua script, so
// concurrent replicas cannot both take the last remaining slot.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// admitScript trims expired members, counts the remainder, and records the
// new timestamp only when the count is below the limit. Returns 1 on
// admission, 0 on denial.
var admitScript = redis.NewScript(`
local key    = KEYS[1]
local cutoff = ARGV[1]
local now    = ARGV[2]
local limit  = tonumber(ARGV[3])
local ttl    = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', cutoff)
local count = redis.call('ZCARD', key)
if count >= limit then
  return 0
end
redis.call('ZADD', key, now, now)
redis.call('PEXPIRE', key, ttl)
return 1
`)

// NewRedis constructs a Redis limiter from a redis:// URL. Non-positive
// limit/window fall back to the package defaults.
func NewRedis(redisURL string, limit int, windowLen time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if windowLen <= 0 {
		windowLen = DefaultWindow
	}
	return &Redis{
		client: redis.NewClient(opt),
		limit:  limit,
		window: windowLen,
	}, nil
}

// exclusiveCutoff renders the window cutoff as an exclusive ZREMRANGEBYSCORE
// bound, so a timestamp exactly one window old survives the trim the same
// way SlidingWindow keeps it.
func exclusiveCutoff(now time.Time, window time.Duration) string {
	return "(" + strconv.FormatInt(now.Add(-window).UnixNano(), 10)
}

// Allow reports whether a request from identity is admitted at now. Errors
// reaching Redis are returned to the caller; the pipeline treats them as
// denials rather than waving traffic through on a broken limiter.
func (r *Redis) Allow(ctx context.Context, identity string, now time.Time) (bool, error) {
	res, err := admitScript.Run(ctx, r.client,
		[]string{"ratelimit:" + identity},
		exclusiveCutoff(now, r.window),
		strconv.FormatInt(now.UnixNano(), 10),
		r.limit,
		r.window.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Close releases the underlying Redis connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
