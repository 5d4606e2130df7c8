package middleware

import (
	"strings"

	"gfg-stable-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// CORS rejects browser requests from origins outside the allow-list with 403
// and answers preflights for the rest. Credentials are allowed.
func CORS(cfg CORSConfig) fiber.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || allowed[strings.ToLower(o)] {
			continue
		}
		allowed[strings.ToLower(o)] = true
		origins = append(origins, o)
	}

	handler := cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type, Authorization",
		ExposeHeaders:    "Content-Disposition, X-Trace-Id",
		AllowCredentials: len(origins) > 0,
	})

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		// No origin (same-origin or non-browser clients): allow
		if origin == "" {
			return c.Next()
		}
		if !allowed[strings.ToLower(strings.TrimRight(origin, "/"))] {
			return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
		}
		return handler(c)
	}
}
