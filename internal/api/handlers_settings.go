package api

import (
	"github.com/cyra-health/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	caller := currentIdentity(c)
	settings, err := handler.tracker.Settings(caller.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"settings": settings})
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	input := updateSettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	caller := currentIdentity(c)
	err := handler.tracker.UpdateSettings(caller.UserID, services.SettingsInput{
		NotificationEnabled:   input.NotificationEnabled,
		ReminderDays:          input.ReminderDays,
		NotificationTime:      input.NotificationTime,
		HideNotificationText:  input.HideNotificationText,
		AllowAdvancedAnalysis: input.AllowAdvancedAnalysis,
	})
	if err != nil {
		return serviceError(c, err)
	}

	settings, err := handler.tracker.Settings(caller.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"settings": settings})
}
