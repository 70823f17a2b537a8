package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func unreachableClient() *Client {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return NewFromUniversal(rdb, zap.NewNop())
}

func TestBlacklistToken_ExpiredSkipsRedis(t *testing.T) {
	c := unreachableClient()
	defer c.Close()

	if err := c.BlacklistToken(context.Background(), "jti-1", 0); err != nil {
		t.Errorf("已过期的 Token 无需写入黑名单，实际返回 %v", err)
	}
}

func TestUnavailable_ReturnsError(t *testing.T) {
	c := unreachableClient()
	defer c.Close()
	ctx := context.Background()

	if _, err := c.IsBlacklisted(ctx, "jti-1"); err == nil {
		t.Error("Redis 不可达时 IsBlacklisted 应返回错误")
	}
	if allowed, err := c.CheckRateLimit(ctx, "ip:127.0.0.1:/x", 10, time.Minute); err == nil || allowed {
		t.Errorf("Redis 不可达时 CheckRateLimit 应返回错误且不放行，实际 allowed=%v err=%v", allowed, err)
	}
}
