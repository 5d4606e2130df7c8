package middleware

import (
	"context"
	"strings"

	"gfg-stable-backend/internal/application/auth"
	"gfg-stable-backend/internal/pkg/apperr"
	"gfg-stable-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	userLocal  = "user"
	tokenLocal = "access_token"
)

// Authenticator checks a bearer token against the session table.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a live bearer token and stores the
// token's claims in Locals for the handlers.
func RequireAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return response.Unauthorized(c, "Access token required")
		}
		claims, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			if ae, ok := apperr.As(err); ok {
				return response.Error(c, ae.Message, ae.Status, nil)
			}
			return err
		}
		c.Locals(userLocal, claims)
		c.Locals(tokenLocal, token)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUser returns the authenticated caller, or nil.
func GetUser(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(userLocal).(*auth.Claims)
	return claims
}

// GetToken returns the raw bearer token RequireAuth accepted.
func GetToken(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenLocal).(string)
	return token
}

// SetUser is used by tests and internal callers that already hold claims.
func SetUser(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals(userLocal, claims)
}
