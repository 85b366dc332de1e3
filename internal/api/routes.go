package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.AuthRequired)

	cycles := api.Group("/cycles")
	cycles.Get("", handler.ListCycles)
	cycles.Post("", handler.OwnerOnly, handler.LogPeriodStart)
	cycles.Post("/:id/end", handler.OwnerOnly, handler.EndPeriod)

	api.Post("/symptoms/:date", handler.OwnerOnly, handler.LogSymptoms)

	api.Get("/insights", handler.GetInsights)
	api.Get("/prediction", handler.GetPrediction)
	api.Get("/schedule", handler.GetNotificationSchedule)

	api.Get("/settings", handler.GetSettings)
	api.Put("/settings", handler.OwnerOnly, handler.UpdateSettings)

	export := api.Group("/export", handler.OwnerOnly)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)

	api.Post("/assistant/chat", handler.AssistantChat)

	api.Delete("/data", handler.OwnerOnly, handler.DeleteAllData)
}
