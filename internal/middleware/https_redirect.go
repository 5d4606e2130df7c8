package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// HTTPSRedirect sends plain-HTTP requests arriving through a proxy to the
// https URL. It relies on X-Forwarded-Proto; only mount it in production.
func HTTPSRedirect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		proto := c.Get(fiber.HeaderXForwardedProto)
		if proto == "" || proto == "https" {
			return c.Next()
		}
		return c.Redirect("https://"+c.Hostname()+c.OriginalURL(), fiber.StatusMovedPermanently)
	}
}

// RedirectHandler is the whole app of the plain HTTP listener that runs next
// to the TLS one.
func RedirectHandler(c *fiber.Ctx) error {
	return c.Redirect("https://"+c.Hostname()+c.OriginalURL(), fiber.StatusMovedPermanently)
}
