package config

import "time"

// RateLimitConfig drives the fixed-window rate limiter.  Limit is the
// number of requests a single client (IP + user) may issue per
// Window.  Generation endpoints are write-heavy and lock rows, so the
// default budget is deliberately modest.
type RateLimitConfig struct {
    Enabled bool
    Limit   int
    Window  time.Duration
    Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig, falling back to defaults when unset.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Limit:   atoi(getenv("RATE_LIMIT_PER_WINDOW", "60")),
        Window:  parseDur(getenv("RATE_LIMIT_WINDOW", "1m")),
        Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Limit < 1 {
        cfg.Limit = 1
    }
    if cfg.Window <= 0 {
        cfg.Window = time.Minute
    }
    return cfg
}
