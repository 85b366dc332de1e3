package api

import (
	"github.com/cyra-health/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	caller := currentIdentity(c)
	records, err := handler.tracker.ListRecords(caller.UserID, 0)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(services.BuildExportSummary(records))
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	caller := currentIdentity(c)
	records, err := handler.tracker.ListRecords(caller.UserID, 0)
	if err != nil {
		return serviceError(c, err)
	}

	output, err := services.BuildExportCSV(records)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cyra-export.csv"`)
	c.Type("csv", "utf-8")
	return c.Send(output)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	caller := currentIdentity(c)
	records, err := handler.tracker.ListRecords(caller.UserID, 0)
	if err != nil {
		return serviceError(c, err)
	}

	settings, err := handler.tracker.Settings(caller.UserID)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cyra-export.json"`)
	return c.JSON(fiber.Map{
		"summary":  services.BuildExportSummary(records),
		"records":  records,
		"settings": settings,
	})
}
