package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comelu/waitlist-api/pkg/logging"
)

const redisKeyPrefix = "waitlist:ratelimit:"

// RedisLimiter implements the same sliding-window semantics as
// MemoryLimiter over a sorted set per key, so multiple instances share
// one counter. It fails open: a Redis error allows the request and is
// only logged.
type RedisLimiter struct {
	client  *redis.Client
	window  time.Duration
	max     int
	timeout time.Duration
	logger  *logging.Logger
	now     func() time.Time
}

// NewRedisLimiter creates a limiter allowing max attempts per key
// within the trailing window, backed by the given Redis client.
func NewRedisLimiter(client *redis.Client, window time.Duration, max int, logger *logging.Logger) *RedisLimiter {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisLimiter{
		client:  client,
		window:  window,
		max:     max,
		timeout: 2 * time.Second,
		logger:  logger,
		now:     time.Now,
	}
}

// Allow prunes entries older than the window, denies when the pruned
// count is already at max, and otherwise records the attempt with the
// window as key TTL.
func (l *RedisLimiter) Allow(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	now := l.now()
	rkey := redisKeyPrefix + key
	cutoff := strconv.FormatInt(now.Add(-l.window).UnixMilli(), 10)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, rkey, "0", cutoff)
	card := pipe.ZCard(ctx, rkey)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Error("rate limit check failed, allowing request", "error", err, "key", key)
		return true
	}

	if card.Val() >= int64(l.max) {
		return false
	}

	record := l.client.TxPipeline()
	record.ZAdd(ctx, rkey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	record.Expire(ctx, rkey, l.window)
	if _, err := record.Exec(ctx); err != nil {
		l.logger.Error("rate limit record failed", "error", err, "key", key)
	}
	return true
}

var _ Limiter = (*RedisLimiter)(nil)
