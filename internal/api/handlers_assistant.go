package api

import (
	"errors"

	"github.com/cyra-health/cyra/internal/assistant"
	"github.com/gofiber/fiber/v2"
)

// AssistantChat proxies the conversation to the assistant service and returns
// the fully accumulated reply. An interrupted stream yields a retryable 502
// with no partial text.
func (handler *Handler) AssistantChat(c *fiber.Ctx) error {
	if handler.assistant == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "assistant not configured")
	}

	input := assistantChatInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if message := validateInput(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	reply, err := handler.assistant.Reply(c.UserContext(), input.Messages, nil)
	if err != nil {
		if errors.Is(err, assistant.ErrStreamInterrupted) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":     "assistant reply interrupted",
				"retryable": true,
			})
		}
		return apiError(c, fiber.StatusBadGateway, "assistant unavailable")
	}

	return c.JSON(fiber.Map{"message": reply})
}
