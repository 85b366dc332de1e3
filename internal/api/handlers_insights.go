package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	caller := currentIdentity(c)
	insights, err := handler.tracker.Insights(caller.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"insights": insights})
}

// GetPrediction serves the locally computed prediction and, when the remote
// scoring service is configured and answers, attaches its richer output. A
// remote failure is invisible to the client: the local prediction is the
// first-class fallback, not an error path.
func (handler *Handler) GetPrediction(c *fiber.Ctx) error {
	caller := currentIdentity(c)

	prediction, err := handler.tracker.Prediction(caller.UserID)
	if err != nil {
		return serviceError(c, err)
	}

	response := fiber.Map{
		"prediction": prediction,
		"source":     "local",
	}

	if prediction != nil {
		insights, err := handler.tracker.Insights(caller.UserID)
		if err == nil {
			if remote, ok := handler.scoring.Predict(c.UserContext(), fiber.Map{
				"predicted_start_date": prediction.PredictedStartDate.Format("2006-01-02"),
				"average_cycle_length": insights.AverageCycleLength,
				"cycle_variability":    insights.CycleVariability,
				"based_on_cycles":      prediction.BasedOnCycles,
			}); ok {
				response["remote"] = remote
				response["source"] = "remote"
			}
		}
	}

	return c.JSON(response)
}

func (handler *Handler) GetNotificationSchedule(c *fiber.Ctx) error {
	caller := currentIdentity(c)
	entries, err := handler.tracker.NotificationSchedule(caller.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"schedule": entries})
}
