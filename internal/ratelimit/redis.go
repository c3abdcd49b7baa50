package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests in fixed windows stored in Redis, so several
// server processes can share one budget.
type RedisLimiter struct {
	rdb    goredis.UniversalClient
	policy Policy
	now    func() time.Time
}

func NewRedisLimiter(rdb goredis.UniversalClient, policy Policy) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, policy: policy, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := l.now().Truncate(l.policy.Window).Unix()
	redisKey := fmt.Sprintf("rate_limit:%s:%s:%d", l.policy.Name, key, window)

	var incr *goredis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.policy.Window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(l.policy.Limit), nil
}

// RedisFactory creates RedisLimiters sharing one client.
type RedisFactory struct {
	Client goredis.UniversalClient
}

func (f RedisFactory) New(policy Policy) Limiter {
	return NewRedisLimiter(f.Client, policy)
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}
