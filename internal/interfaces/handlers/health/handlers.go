package health

import (
	"crypto/subtle"
	"time"

	healthsvc "gfg-stable-backend/internal/application/health"
	"gfg-stable-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const errorLogLimit = 50

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Checker        *healthsvc.Checker
	HealthAdminKey string
}

// Ping GET /health
func (h *Handlers) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.Checker.Started).Seconds(),
	})
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	return c.JSON(h.Checker.Collect(c.UserContext()))
}

// Dashboard GET /health/status renders the HTML status page.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	html, err := healthsvc.RenderDashboard(h.Checker.Collect(c.UserContext()))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// Errors GET /health/errors returns the last 5xx entries, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Checker.Redis == nil {
		return c.JSON([]interface{}{})
	}
	entries, err := healthsvc.ErrorLog(c.UserContext(), h.Checker.Redis, errorLogLimit)
	if err != nil {
		log.Warn().Err(err).Msg("error log unavailable")
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	return c.JSON(entries)
}

// Reset GET /health/reset?key=HEALTH_ADMIN_KEY clears the counters.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if h.HealthAdminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.HealthAdminKey)) != 1 {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if h.Checker.Redis == nil {
		return response.Error(c, "Redis not configured", fiber.StatusServiceUnavailable, nil)
	}
	if err := healthsvc.Reset(c.UserContext(), h.Checker.Redis); err != nil {
		return err
	}
	log.Info().Msg("health stats reset")
	return response.Success(c, "Stats reset successfully", nil)
}
