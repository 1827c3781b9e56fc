/*
 * @module service/rate_limiter/redis_rate_limiter_test
 * @description Redis限流器单元测试，Redis不可用时跳过
 * @architecture 测试层
 */

package rate_limiter

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLimiter(t *testing.T, max int) *RedisRateLimiter {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:6379", host),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis不可用，跳过限流测试: %v", err)
	}

	return NewRedisRateLimiter(client, time.Minute, max)
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	limiter := setupTestLimiter(t, 3)
	ctx := context.Background()
	caller := fmt.Sprintf("test-caller-%d", time.Now().UnixNano())

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, caller)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "第%d次请求应被放行", i+1)
		assert.Equal(t, 3, result.Limit)
	}

	result, err := limiter.Allow(ctx, caller)
	require.NoError(t, err)
	assert.False(t, result.Allowed, "超过窗口上限的请求应被拒绝")
	assert.Equal(t, 0, result.Remaining)
}

func TestRedisRateLimiter_IsolatedCallers(t *testing.T) {
	limiter := setupTestLimiter(t, 1)
	ctx := context.Background()
	now := time.Now().UnixNano()

	first, err := limiter.Allow(ctx, fmt.Sprintf("caller-a-%d", now))
	require.NoError(t, err)
	second, err := limiter.Allow(ctx, fmt.Sprintf("caller-b-%d", now))
	require.NoError(t, err)

	assert.True(t, first.Allowed)
	assert.True(t, second.Allowed, "不同调用方的计数应相互独立")
}
