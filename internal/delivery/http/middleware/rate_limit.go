package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"corp-social-backend/internal/delivery/http/response"
	"corp-social-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// DefaultRateLimitConfig returns the global per-IP policy.
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// limiterStore is the in-memory fallback: one token bucket per key, refilled
// at Limit per Window. Idle buckets are dropped lazily.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	r        rate.Limit
	burst    int
	ttl      time.Duration
}

type clientLimiter struct {
	lim     *rate.Limiter
	lastHit time.Time
}

func newLimiterStore(config RateLimitConfig) *limiterStore {
	return &limiterStore{
		limiters: make(map[string]*clientLimiter),
		r:        rate.Limit(float64(config.Limit) / config.Window.Seconds()),
		burst:    config.Limit,
		ttl:      2 * config.Window,
	}
}

func (s *limiterStore) allow(key string, now time.Time) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range s.limiters {
		if now.Sub(v.lastHit) > s.ttl {
			delete(s.limiters, k)
		}
	}

	cl, ok := s.limiters[key]
	if !ok {
		cl = &clientLimiter{lim: rate.NewLimiter(s.r, s.burst)}
		s.limiters[key] = cl
	}
	cl.lastHit = now

	allowed := cl.lim.AllowN(now, 1)
	remaining := int(cl.lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

// RateLimitMiddleware counts requests in Redis when a client is given and
// falls back to in-memory token buckets otherwise or on Redis errors.
func RateLimitMiddleware(client *goredis.Client, config RateLimitConfig) gin.HandlerFunc {
	fallback := newLimiterStore(config)

	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		now := time.Now()

		var (
			allowed   bool
			remaining int
			resetAt   = now.Add(config.Window)
		)

		redisOK := false
		if client != nil {
			count, reset, err := checkRateLimitRedis(c.Request.Context(), client, config.KeyPrefix+key, config)
			if err == nil {
				redisOK = true
				allowed = count <= config.Limit
				remaining = config.Limit - count
				resetAt = reset
			} else {
				logger.Log.Warn("Rate limit backend unavailable", "error", err, "ip", c.ClientIP())
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
			}
		}
		if !redisOK {
			allowed, remaining = fallback.allow(key, now)
		}
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Rate limit triggered",
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", c.GetString("RequestID"),
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, client, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}
