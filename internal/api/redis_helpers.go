package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateCounter 是登录限流需要的最小 Redis 操作面。
type rateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// incrementWithTTL 递增计数器，首次创建时设置过期时间。
func incrementWithTTL(ctx context.Context, client rateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
