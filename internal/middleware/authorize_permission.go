package middleware

import (
	"gfg-stable-backend/internal/constants"
	"gfg-stable-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorizePermission checks the caller's role against PermissionRoles.
// Unconfigured permission -> 500 "Permission configuration error"; role not allowed -> 403 "Insufficient permissions".
func AuthorizePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return response.Unauthorized(c, "Access token required")
		}
		if user.RoleName == "" {
			return response.Error(c, "Authorization error", fiber.StatusInternalServerError, nil)
		}
		roles, ok := constants.PermissionRoles[permission]
		if !ok || len(roles) == 0 {
			return response.Error(c, "Permission configuration error", fiber.StatusInternalServerError, nil)
		}
		if !constants.AllowedRole(permission, user.RoleName) {
			return response.Error(c, "Insufficient permissions", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}

// AuthorizeSelfOrPermission lets roles holding permission through; everyone
// else may only act on the member whose id is in the :param route segment.
func AuthorizeSelfOrPermission(param, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return response.Unauthorized(c, "Access token required")
		}
		if constants.AllowedRole(permission, user.RoleName) {
			return c.Next()
		}
		id, err := c.ParamsInt(param)
		if err != nil || id < 1 || uint(id) != user.UserID {
			return response.Error(c, "Access denied", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}
