package middleware

import (
	"strings"
	"time"

	"gfg-stable-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const (
	defaultRateWindow = 15 * time.Minute
	defaultRateMax    = 100
)

// RateLimitConfig bounds requests per client IP in a fixed window.
type RateLimitConfig struct {
	Window  time.Duration
	Max     int
	Storage fiber.Storage // nil keeps counters in memory
}

func RateLimit(cfg RateLimitConfig) fiber.Handler {
	if cfg.Window <= 0 {
		cfg.Window = defaultRateWindow
	}
	if cfg.Max <= 0 {
		cfg.Max = defaultRateMax
	}
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    cfg.Storage,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/health") || c.Path() == "/metrics"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, "Too many requests from this IP, please try again later.", fiber.StatusTooManyRequests, nil)
		},
	})
}
