package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/nanotrader/pkg/config"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/ratelimit"
	"github.com/wyfcoding/nanotrader/pkg/response"
)

// RateLimitMiddleware 按客户端 IP 限流，限流器故障时放行
func RateLimitMiddleware(limiter ratelimit.RateLimiter, cfg config.RateLimitConfig) gin.HandlerFunc {
	limit := ratelimit.PerSecond(cfg.QPS, cfg.Burst)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		res, err := limiter.Allow(ctx, "ip:"+c.ClientIP(), limit)
		if err != nil {
			logger.Warn(ctx, "Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", ceilSeconds(res.ResetAfter))

		if !res.Allowed {
			c.Header("Retry-After", ceilSeconds(res.RetryAfter))
			response.ErrorWithStatus(c, http.StatusTooManyRequests, "Too Many Requests", res.RetryAfter.String())
			c.Abort()
			return
		}

		c.Next()
	}
}

// ceilSeconds 向上取整到秒，避免 0.5s 被报告成 0
func ceilSeconds(d time.Duration) string {
	if d <= 0 {
		return "0"
	}
	return strconv.FormatInt(int64((d+time.Second-1)/time.Second), 10)
}
