package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RateLimiterConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	// BlockDuration is how long a client stays blocked after exceeding the limit.
	BlockDuration time.Duration
}

func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerWindow: 150,
		Window:            time.Minute,
		BlockDuration:     5 * time.Minute,
	}
}

// Sliding window over a sorted set of request timestamps.
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local expiry = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local currentCount = redis.call('ZCARD', key)
redis.call('ZADD', key, now, now)
redis.call('EXPIRE', key, expiry)

local remaining = math.max(limit - currentCount - 1, 0)
local allowed = currentCount < limit

return {allowed and 1 or 0, remaining}
`)

// RateLimiterMiddleware limits requests per authenticated user, falling back
// to the client IP. Redis failures let the request through.
func RateLimiterMiddleware(client redis.UniversalClient, logger *logger.Logger, config RateLimiterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		subject := rateLimitSubject(c)

		blockKey := "ratelimit:block:" + subject
		ttl, err := client.TTL(ctx, blockKey).Result()
		if err != nil {
			logger.Error("failed to check rate limit block", zap.Error(err), zap.String("subject", subject))
			c.Next()
			return
		}

		if ttl > 0 {
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", config.RequestsPerWindow))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(ttl).Unix()))
			abortTooManyRequests(c, "Too many requests. You have been temporarily blocked.", ttl)
			return
		}

		allowed, remaining, err := checkRateLimit(ctx, client, subject, config)
		if err != nil {
			logger.Error("failed to check rate limit", zap.Error(err), zap.String("subject", subject))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", config.RequestsPerWindow))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(config.Window).Unix()))

		if !allowed {
			if err := client.Set(ctx, blockKey, "1", config.BlockDuration).Err(); err != nil {
				logger.Error("failed to block client", zap.Error(err), zap.String("subject", subject))
			}

			logger.Warn("rate limit exceeded",
				zap.String("subject", subject),
				zap.String("path", c.Request.URL.Path),
			)

			abortTooManyRequests(c,
				fmt.Sprintf("Rate limit exceeded. Maximum %d requests per %v.", config.RequestsPerWindow, config.Window),
				config.BlockDuration,
			)
			return
		}

		c.Next()
	}
}

func rateLimitSubject(c *gin.Context) string {
	if userID, ok := GetUserID(c); ok {
		return "user:" + userID
	}
	return "ip:" + c.ClientIP()
}

func checkRateLimit(ctx context.Context, client redis.UniversalClient, subject string, config RateLimiterConfig) (bool, int, error) {
	result, err := rateLimitScript.Run(ctx, client,
		[]string{"ratelimit:" + subject},
		time.Now().UnixNano(),
		config.Window.Nanoseconds(),
		config.RequestsPerWindow,
		int(config.Window.Seconds())+60,
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(result) != 2 {
		return false, 0, fmt.Errorf("unexpected rate limit result: %v", result)
	}
	return result[0] == 1, int(result[1]), nil
}

func abortTooManyRequests(c *gin.Context, message string, retryAfter time.Duration) {
	c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":       "rate_limit_exceeded",
		"message":     message,
		"retry_after": int(retryAfter.Seconds()),
	})
}
