package api

import (
	"errors"

	"github.com/cyra-health/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps service failures onto the API taxonomy: invalid input is
// a 400 rejected before any write, a missing record is a 404, and storage
// trouble is a transient 502 the client may retry.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidSymptomValue),
		errors.Is(err, services.ErrStartNotAfterCurrent),
		errors.Is(err, services.ErrPeriodAlreadyLogged),
		errors.Is(err, services.ErrNotAPeriodRecord),
		errors.Is(err, services.ErrEndBeforeStart),
		errors.Is(err, services.ErrInvalidReminderDays),
		errors.Is(err, services.ErrInvalidNotificationTime):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrRecordNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRecordLoadFailed),
		errors.Is(err, services.ErrRecordWriteFailed),
		errors.Is(err, services.ErrSettingsLoadFailed),
		errors.Is(err, services.ErrSettingsWriteFailed):
		return apiError(c, fiber.StatusBadGateway, "storage temporarily unavailable")
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
