/*
 * @module api/middleware/rate_limit
 * @description 迁移API限流中间件，按API密钥前缀或客户端IP做固定窗口限流
 * @architecture 中间件层
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 提取调用方标识 -> Redis限流检查 -> 放行或返回429
 * @rules 未配置限流器时直接放行；响应携带X-RateLimit-*头
 * @dependencies github.com/go-chi/render, github.com/go-redis/redis/v8
 * @refs service/rate_limiter/redis_rate_limiter.go
 */

package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"migration-service/service/rate_limiter"
)

// RateLimit 基于Redis的请求限流中间件
type RateLimit struct {
	limiter *rate_limiter.RedisRateLimiter
}

// NewRateLimit 创建限流中间件，limiter 为 nil 时中间件直接放行
func NewRateLimit(limiter *rate_limiter.RedisRateLimiter) *RateLimit {
	return &RateLimit{limiter: limiter}
}

// Handler 中间件处理函数
func (rl *RateLimit) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		result, _ := rl.limiter.Allow(r.Context(), callerIdentity(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, map[string]interface{}{
				"status": http.StatusTooManyRequests,
				"msg":    "请求过于频繁，请稍后重试",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// callerIdentity 优先使用API密钥前缀，未携带密钥时退化为客户端IP
func callerIdentity(r *http.Request) string {
	if key := r.Header.Get(apiKeyHeader); len(key) >= keyPrefixLen {
		return key[:keyPrefixLen]
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
