package security

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter caps resume uploads per acting user with a Redis sliding
// window. Without a client every upload is allowed.
type UploadLimiter struct {
	client    goredis.Scripter
	perMinute int
	perDay    int
	now       func() time.Time
}

// Sliding window check.
// KEYS[1] = window key, ARGV = limit, window seconds, now, member.
// Returns 1 when allowed, 0 when limited.
const uploadWindowScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
if redis.call('ZCARD', key) >= limit then
    return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter defaults to 10 uploads a minute and 100 a day.
func NewUploadLimiter(client goredis.Scripter, perMinute, perDay int) *UploadLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if perDay <= 0 {
		perDay = 100
	}
	return &UploadLimiter{client: client, perMinute: perMinute, perDay: perDay, now: time.Now}
}

// Allow reports whether actorID may upload now and, if not, how many seconds
// to wait. Redis errors are returned with allowed=true so uploads keep
// working while the cache is down.
func (l *UploadLimiter) Allow(ctx context.Context, actorID string) (bool, int, error) {
	if l == nil || l.client == nil {
		return true, 0, nil
	}
	now := l.now()

	windows := []struct {
		key    string
		limit  int
		window int
	}{
		{fmt.Sprintf("ratelimit:resume:minute:%s", actorID), l.perMinute, 60},
		{fmt.Sprintf("ratelimit:resume:day:%s", actorID), l.perDay, 86400},
	}
	for _, w := range windows {
		ok, err := l.check(ctx, w.key, w.limit, w.window, now)
		if err != nil {
			return true, 0, fmt.Errorf("upload limit check: %w", err)
		}
		if !ok {
			return false, w.window, nil
		}
	}
	return true, 0, nil
}

func (l *UploadLimiter) check(ctx context.Context, key string, limit, window int, now time.Time) (bool, error) {
	member := fmt.Sprintf("%d", now.UnixNano())
	res, err := goredis.NewScript(uploadWindowScript).Run(ctx, l.client, []string{key}, limit, window, now.Unix(), member).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}
