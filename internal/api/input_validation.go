package api

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateInput returns a user-facing message for the first failing field, or
// "" when the struct is valid.
func validateInput(input any) string {
	err := validate.Struct(input)
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid request"
	}

	first := validationErrors[0]
	field := strings.ToLower(first.Field())
	switch first.Tag() {
	case "required":
		return field + " is required"
	case "datetime":
		return field + " must be a YYYY-MM-DD date"
	case "min":
		return field + " must have at least " + first.Param() + " items"
	default:
		return field + " is invalid"
	}
}

// parseDay parses a YYYY-MM-DD date in the handler's location. The zero time
// signals an unparseable date to the service layer.
func (handler *Handler) parseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), handler.location)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
