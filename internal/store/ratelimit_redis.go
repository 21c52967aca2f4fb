package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRedis is a Redis implementation of ratelimit.Store using a sorted
// set of request timestamps per key, pruned on every record.
type RateLimitRedis struct {
	client *redis.Client
	prefix string
}

// NewRateLimitRedis creates a Redis-backed rate limit store.
func NewRateLimitRedis(client *redis.Client) *RateLimitRedis {
	return &RateLimitRedis{
		client: client,
		prefix: "ratelimit:",
	}
}

func (s *RateLimitRedis) Record(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()
	cutoff := now.Add(-window)
	redisKey := s.prefix + key

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	count := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return count.Val(), nil
}
