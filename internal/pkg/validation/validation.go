package validation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// FieldError is one entry of the "details" array on a 400 Validation failed response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("ageband", validateAgeBand)
	_ = v.RegisterValidation("notblank", validateNotBlank)
	return v
}

// Age filter accepts the fixed bands or an exact age.
func validateAgeBand(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	switch s {
	case "2-4", "5-7", "8+":
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Struct validates obj and returns nil when it is valid.
func Struct(obj interface{}) []FieldError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error(), Type: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: getErrorMsg(fe),
			Type:    fe.Tag(),
		})
	}
	return out
}

func getErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required"
	case "email":
		return "Valid email is required"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "Must be at least " + fe.Param() + " characters/items"
		}
		return "Must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "Must be at most " + fe.Param() + " characters/items"
		}
		return "Must be at most " + fe.Param()
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "gte":
		return "Value must be greater than or equal to " + fe.Param()
	case "lte":
		return "Value must be less than or equal to " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "url":
		return "Invalid URL"
	case "ageband":
		return "Age must be 2-4, 5-7, 8+ or a whole number"
	default:
		return "Invalid value"
	}
}
