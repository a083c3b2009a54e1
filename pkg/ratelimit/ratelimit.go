// Package ratelimit 基于 Redis 的 GCRA 限流，多个实例共享同一份配额
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// ErrInvalidLimit 速率、周期或突发量不是正数
var ErrInvalidLimit = errors.New("rate limit must have positive rate, period and burst")

const keyPrefix = "nanotrader:ratelimit:"

// RateLimiter 限流器
type RateLimiter interface {
	// Allow 判断 key 在 limit 下是否允许本次请求
	Allow(ctx context.Context, key string, limit Limit) (*Result, error)
}

// Limit 每个 Period 允许 Rate 次，最多突发 Burst 次
type Limit struct {
	Rate   int
	Period time.Duration
	Burst  int
}

// PerSecond 每秒 qps 次，burst 不大于 0 时等于 qps
func PerSecond(qps, burst int) Limit {
	if burst <= 0 {
		burst = qps
	}
	return Limit{Rate: qps, Period: time.Second, Burst: burst}
}

// Validate 检查各项是否为正数
func (l Limit) Validate() error {
	if l.Rate <= 0 || l.Period <= 0 || l.Burst <= 0 {
		return fmt.Errorf("%w: rate=%d period=%s burst=%d", ErrInvalidLimit, l.Rate, l.Period, l.Burst)
	}
	return nil
}

// Result 一次检查的结果
type Result struct {
	Allowed   bool
	Remaining int
	// ResetAfter 配额完全恢复所需时间
	ResetAfter time.Duration
	// RetryAfter 被拒绝时下次可重试的等待时间
	RetryAfter time.Duration
}

// RedisRateLimiter 用 redis_rate 实现，key 统一加 nanotrader 前缀
type RedisRateLimiter struct {
	limiter *redis_rate.Limiter
}

// NewRedisRateLimiter 创建 Redis 限流器
func NewRedisRateLimiter(rdb redis.UniversalClient) *RedisRateLimiter {
	return &RedisRateLimiter{limiter: redis_rate.NewLimiter(rdb)}
}

// Allow 非法 limit 直接返回错误，不访问 Redis
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	if err := limit.Validate(); err != nil {
		return nil, err
	}

	res, err := r.limiter.Allow(ctx, keyPrefix+key, redis_rate.Limit{
		Rate:   limit.Rate,
		Period: limit.Period,
		Burst:  limit.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit check for %s: %w", key, err)
	}

	return &Result{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		ResetAfter: res.ResetAfter,
		RetryAfter: res.RetryAfter,
	}, nil
}
