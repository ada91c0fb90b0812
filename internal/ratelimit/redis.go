package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "portal:ratelimit:"

// Redis implements a fixed-window limiter shared by every server instance.
type Redis struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedis connects to addr and verifies the connection before returning.
func NewRedis(addr string, limit int, window time.Duration) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{rdb: rdb, limit: limit, window: window, now: time.Now}, nil
}

// Allow increments the counter for the current window of key.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	bucket := r.now().UnixNano() / int64(r.window)
	k := redisKeyPrefix + key + ":" + strconv.FormatInt(bucket, 10)

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val() <= int64(r.limit), nil
}

// Close releases the Redis connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
