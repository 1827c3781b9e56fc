/*
 * @module service/rate_limiter/redis_rate_limiter
 * @description 基于Redis的分布式限流服务，按调用方固定窗口限制迁移API请求频率
 * @architecture 工具层 - 提供分布式限流能力
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 请求到达 -> Redis计数 -> 判断是否超限
 * @rules 使用Redis INCR和EXPIRE实现固定窗口限流；Redis异常时放行请求并记录告警
 * @dependencies github.com/go-redis/redis/v8
 * @refs api/middleware/rate_limit.go
 */

package rate_limiter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

const rateLimitKeyPattern = "migration:ratelimit:%s:%d"

// RateLimitResult 限流检查结果
type RateLimitResult struct {
	Allowed   bool  `json:"allowed"`   // 是否允许请求
	Limit     int   `json:"limit"`     // 窗口内最大请求数
	Remaining int   `json:"remaining"` // 剩余可用请求数
	ResetAt   int64 `json:"reset_at"`  // 窗口重置时间（Unix时间戳）
}

// RedisRateLimiter Redis限流器，按调用方标识做固定窗口计数
type RedisRateLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxRequests int
}

// NewRedisRateLimiter 创建Redis限流器
// client 由服务初始化层注入，window/maxRequests 定义固定窗口限流规则
func NewRedisRateLimiter(client *redis.Client, window time.Duration, maxRequests int) *RedisRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisRateLimiter{
		client:      client,
		window:      window,
		maxRequests: maxRequests,
	}
}

// Allow 检查调用方是否超过限流
// Redis不可用时放行请求，避免缓存故障阻断迁移
func (r *RedisRateLimiter) Allow(ctx context.Context, callerID string) (*RateLimitResult, error) {
	windowStart := time.Now().Unix() / int64(r.window.Seconds())
	key := fmt.Sprintf(rateLimitKeyPattern, callerID, windowStart)
	resetAt := (windowStart + 1) * int64(r.window.Seconds())

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("限流计数失败，放行请求", "caller", callerID, "error", err)
		return &RateLimitResult{
			Allowed:   true,
			Limit:     r.maxRequests,
			Remaining: r.maxRequests,
			ResetAt:   resetAt,
		}, err
	}

	// 窗口首个请求时设置过期时间
	if count == 1 {
		r.client.Expire(ctx, key, r.window)
	}

	remaining := r.maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitResult{
		Allowed:   int(count) <= r.maxRequests,
		Limit:     r.maxRequests,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
