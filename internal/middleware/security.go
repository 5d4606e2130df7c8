package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
)

// SecurityHeaders sets the usual hardening headers. HSTS is only sent over TLS.
func SecurityHeaders() fiber.Handler {
	return helmet.New(helmet.Config{
		HSTSMaxAge:                15552000,
		CrossOriginResourcePolicy: "cross-origin",
		ContentSecurityPolicy:     "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:",
	})
}
