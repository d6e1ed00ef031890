package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	redis "github.com/redis/go-redis/v9"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/dto"
)

const redisCallTimeout = 250 * time.Millisecond

// WindowCounter counts hits on a key inside a fixed window
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// windowScript increments the key and starts its window in one step; a key left without a TTL gets one on the next hit
var windowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisWindowCounter runs the window script against Redis
type RedisWindowCounter struct {
	client redis.Scripter
}

// NewRedisWindowCounter wraps client
func NewRedisWindowCounter(client redis.Scripter) *RedisWindowCounter {
	return &RedisWindowCounter{client: client}
}

// Hit returns the number of hits on key in the current window
func (r *RedisWindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	return windowScript.Run(ctx, r.client, []string{key}, window.Milliseconds()).Int64()
}

// NewRedisClient creates a client for addr; a failed startup ping is only logged because the limiter fails open per request
func NewRedisClient(ctx context.Context, addr, password string, db int, logger coreport.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, rate limiter admits requests until it recovers", map[string]any{
			"addr":  addr,
			"error": err.Error(),
		})
		return client
	}

	logger.Info("Connected to Redis rate limiter", map[string]any{"addr": addr})
	return client
}

// RateLimiter is a fixed-window per-client limiter
type RateLimiter struct {
	counter     WindowCounter
	maxRequests int
	window      time.Duration
	logger      coreport.Logger
	requests    *prometheus.CounterVec
	blocked     *prometheus.CounterVec
}

// NewRateLimiter creates a limiter; a nil counter allows every request
func NewRateLimiter(counter WindowCounter, maxRequests int, window time.Duration, logger coreport.Logger, reg prometheus.Registerer) *RateLimiter {
	rl := &RateLimiter{
		counter:     counter,
		maxRequests: maxRequests,
		window:      window,
		logger:      logger,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finquery",
				Name:      "rate_limiter_requests_total",
				Help:      "Total requests admitted by the rate limiter",
			},
			[]string{"endpoint"},
		),
		blocked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finquery",
				Name:      "rate_limiter_blocked_total",
				Help:      "Total requests blocked by the rate limiter",
			},
			[]string{"endpoint"},
		),
	}
	if reg != nil {
		reg.MustRegister(rl.requests, rl.blocked)
	}
	return rl
}

// Handler enforces the limit; Redis errors admit the request
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.counter == nil {
			c.Next()
			return
		}

		key := "rl:" + strconv.FormatInt(int64(rl.window.Seconds()), 10) + ":" + c.ClientIP()
		ctx, cancel := context.WithTimeout(c.Request.Context(), redisCallTimeout)
		defer cancel()

		count, err := rl.counter.Hit(ctx, key, rl.window)
		if err != nil {
			rl.logger.Warn("Rate limiter unavailable, admitting request", map[string]any{
				"error": err.Error(),
				"path":  c.FullPath(),
			})
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		remaining := int64(rl.maxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.maxRequests) {
			rl.blocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrRateLimited),
				Message: errs.ErrRateLimited.Error(),
			})
			return
		}

		rl.requests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
