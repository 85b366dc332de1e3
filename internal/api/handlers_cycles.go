package api

import (
	"strconv"

	"github.com/cyra-health/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	caller := currentIdentity(c)

	limit := c.QueryInt("limit", 12)
	if limit < 0 {
		limit = 0
	}

	records, err := handler.tracker.ListRecords(caller.UserID, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"records": records})
}

func (handler *Handler) LogPeriodStart(c *fiber.Ctx) error {
	input := logPeriodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if message := validateInput(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	var symptoms *services.SymptomInput
	if len(input.Symptoms) > 0 {
		parsed := services.SymptomInputFromMap(input.Symptoms)
		symptoms = &parsed
	}

	caller := currentIdentity(c)
	record, err := handler.tracker.LogPeriodStart(caller.UserID, handler.parseDay(input.Date), symptoms)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"record": record})
}

func (handler *Handler) EndPeriod(c *fiber.Ctx) error {
	recordID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid record id")
	}

	input := endPeriodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if message := validateInput(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	caller := currentIdentity(c)
	record, err := handler.tracker.EndPeriod(caller.UserID, uint(recordID), handler.parseDay(input.Date))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"record": record})
}

func (handler *Handler) LogSymptoms(c *fiber.Ctx) error {
	fields := map[string]any{}
	if err := c.BodyParser(&fields); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	caller := currentIdentity(c)
	input := services.SymptomInputFromMap(fields)
	record, err := handler.tracker.LogSymptoms(caller.UserID, handler.parseDay(c.Params("date")), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"record": record})
}

// DeleteAllData wipes the caller's history and settings. The confirmation
// dialog is the client's responsibility; this endpoint is the point of no
// return.
func (handler *Handler) DeleteAllData(c *fiber.Ctx) error {
	caller := currentIdentity(c)
	if err := handler.tracker.DeleteAllData(caller.UserID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
