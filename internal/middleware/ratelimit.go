package middleware

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/lodging-reservation/internal/config"
)

// NewRateLimiter returns a fixed-window rate limiter backed by Redis.
// Each client gets cfg.Limit requests per cfg.Window, counted with
// INCR on a key that expires at the window boundary.  The key joins
// client IP, authenticated user and route, so a planner hammering the
// generation endpoint cannot starve the availability picker.  When
// Redis is unavailable the limiter lets requests through; generation
// correctness never depends on it.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := rateKey(cfg.Prefix, c)
            ctx := c.Request().Context()

            count, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                return next(c)
            }
            if count == 1 {
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }

            remaining := int64(cfg.Limit) - count
            if remaining < 0 {
                remaining = 0
            }
            c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
            c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

            if count > int64(cfg.Limit) {
                ttl, err := rdb.TTL(ctx, key).Result()
                if err != nil || ttl < 0 {
                    ttl = cfg.Window
                }
                secs := int(ttl / time.Second)
                if secs < 1 {
                    secs = 1
                }
                c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "error":       "too_many_requests",
                    "retry_after": secs,
                })
            }
            return next(c)
        }
    }
}

func rateKey(prefix string, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    user := "anon"
    if v, ok := c.Get("user_id").(string); ok && v != "" {
        user = v
    }
    return prefix + ":" + ip + ":" + user + ":" + c.Request().Method + " " + c.Path()
}
