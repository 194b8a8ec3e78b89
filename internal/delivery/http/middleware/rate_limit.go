package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-applicant-intake/internal/delivery/http/response"
	"go-applicant-intake/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for the fixed-window rate limiter
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key, ARGV[1] = TTL in seconds
// Returns the current count
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// RateLimiter applies a per-IP fixed window. When a Redis client is
// provided the window is shared across instances; otherwise an in-memory
// map serves as a single-instance fallback. Fails open on Redis errors:
// the submission endpoint prefers accepting a burst over dropping an
// applicant's form.
type RateLimiter struct {
	cfg RateLimitConfig
	rdb *goredis.Client // nil when Redis is not configured

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

func NewRateLimiter(rdb *goredis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:ip:"
	}
	return &RateLimiter{
		cfg:     cfg,
		rdb:     rdb,
		entries: make(map[string]*rateLimitEntry),
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.cfg.KeyPrefix + c.ClientIP()

		var count int
		if rl.rdb != nil {
			n, err := rl.rdb.Eval(c.Request.Context(), rateLimitLuaScript,
				[]string{key}, int(rl.cfg.Window.Seconds())).Int()
			if err != nil {
				logger.Log.Warn("rate limiter redis unavailable, falling back to in-memory", "error", err)
				count = rl.incrLocal(key)
			} else {
				count = n
			}
		} else {
			count = rl.incrLocal(key)
		}

		if count > rl.cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(int(rl.cfg.Window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) incrLocal(key string) int {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &rateLimitEntry{resetAt: now.Add(rl.cfg.Window)}
		rl.entries[key] = e
		// Lazy cleanup keeps the fallback map from growing unbounded
		if len(rl.entries) > 10000 {
			for k, v := range rl.entries {
				if now.After(v.resetAt) {
					delete(rl.entries, k)
				}
			}
		}
	}
	e.count++
	return e.count
}
