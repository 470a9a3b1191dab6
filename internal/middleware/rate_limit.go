package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/homeauctiondeals/gateway/internal/errs"
	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/homeauctiondeals/gateway/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	rateLimitWindow       = time.Minute
	rateLimitRedisTimeout = 500 * time.Millisecond
	rateLimitKeyPrefix    = "ratelimit"
)

// RateLimitMiddleware enforces per-client request limits. Counters live in
// Redis when it is configured, so every instance shares them, and in
// memory otherwise.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// Limit allows perMinute requests per client IP on endpoint. Denied
// requests get 429 {"message":"Too many requests"}.
func (r *RateLimitMiddleware) Limit(endpoint string, perMinute int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.store(endpoint, perMinute),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError().WithCause(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(endpoint)
			GetLogger(c).Warn().
				Str("endpoint", endpoint).
				Str("client", identifier).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError(model.MsgTooManyRequests).
				WithBody(model.MessageResponse{Message: model.MsgTooManyRequests})
		},
	})
}

func (r *RateLimitMiddleware) store(endpoint string, perMinute int) middleware.RateLimiterStore {
	if r.server.Redis != nil {
		return &windowStore{
			counter: &redisCounter{client: r.server.Redis},
			prefix:  fmt.Sprintf("%s:%s", rateLimitKeyPrefix, endpoint),
			limit:   int64(perMinute),
			window:  rateLimitWindow,
			now:     time.Now,
			logger:  r.server.Logger,
		}
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / rateLimitWindow.Seconds()),
		Burst:     perMinute,
		ExpiresIn: 3 * rateLimitWindow,
	})
}

// windowCounter increments a counter that expires after ttl.
type windowCounter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
}

func (rc *redisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := rc.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// windowStore is a fixed-window limiter: one counter per client per window.
// It fails open when the counter backend is unavailable.
type windowStore struct {
	counter windowCounter
	prefix  string
	limit   int64
	window  time.Duration
	now     func() time.Time
	logger  *zerolog.Logger
}

func (s *windowStore) Allow(identifier string) (bool, error) {
	windowStart := s.now().Truncate(s.window).Unix()
	key := fmt.Sprintf("%s:%s:%d", s.prefix, identifier, windowStart)

	ctx, cancel := context.WithTimeout(context.Background(), rateLimitRedisTimeout)
	defer cancel()

	count, err := s.counter.Incr(ctx, key, s.window)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return count <= s.limit, nil
}
