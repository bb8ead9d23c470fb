package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig describes a fixed window: at most Limit requests per
// Window for each key.
type RateLimitConfig struct {
	Window    time.Duration
	Limit     int
	KeyPrefix string
}

// KeyFunc picks the bucket a request is counted against. An empty key skips
// limiting for that request.
type KeyFunc func(c *gin.Context) string

// ByClientIP buckets requests by remote address.
func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByUser buckets requests by the authenticated caller; it must run after
// AuthMiddleware.
func ByUser(c *gin.Context) string {
	claims, ok := CurrentUser(c)
	if !ok {
		return ""
	}
	return claims.ID
}

// RateLimiter is a Redis fixed-window counter. A nil redis client disables
// it.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Middleware enforces the limit. Redis failures let the request through.
func (rl *RateLimiter) Middleware(keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redis == nil {
			c.Next()
			return
		}
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}

		allowed, remaining, resetAt, err := rl.IsAllowed(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warn("Rate limit check failed", "prefix", rl.config.KeyPrefix, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds())
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests, limit is %d per %v", rl.config.Limit, rl.config.Window),
				"retry_after": retryAfter,
			})
			return
		}
		c.Next()
	}
}

// IsAllowed counts one request for key and reports whether it fits the
// current window.
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incr.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}
