package validation

import (
	"gfg-stable-backend/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrInvalidBody = apperr.BadRequest("Invalid request body")
	ErrValidation  = apperr.BadRequest("Validation failed")
)

// Body parses the request body into out and validates it.
func Body(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return ErrInvalidBody
	}
	return Check(out)
}

// Query parses query parameters into out and validates it.
func Query(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return ErrValidation.WithDetails([]FieldError{{Message: err.Error(), Type: "invalid"}})
	}
	return Check(out)
}

// Check returns ErrValidation carrying the field errors, or nil.
func Check(obj interface{}) error {
	if errs := Struct(obj); errs != nil {
		return ErrValidation.WithDetails(errs)
	}
	return nil
}

// ParamID reads a positive integer route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, apperr.BadRequest("Invalid " + name)
	}
	return uint(id), nil
}
