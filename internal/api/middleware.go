package api

import (
	"strings"

	"github.com/cyra-health/cyra/internal/identity"
	"github.com/gofiber/fiber/v2"
)

const contextIdentityKey = "identity"

// AuthRequired verifies the bearer token minted by the external identity
// provider and stashes the caller's identity on the request.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	rawToken := bearerToken(c)
	caller, err := handler.verifier.Verify(rawToken)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextIdentityKey, caller)
	return c.Next()
}

// OwnerOnly guards mutating routes: the caller's current role is re-checked
// against the provider through the short-TTL cache, not trusted from the
// token alone.
func (handler *Handler) OwnerOnly(c *fiber.Ctx) error {
	caller := currentIdentity(c)

	role, err := handler.roles.Role(caller.UserID)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "identity check temporarily unavailable")
	}
	if role != identity.RoleOwner {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}

	return c.Next()
}

func currentIdentity(c *fiber.Ctx) identity.Identity {
	caller, _ := c.Locals(contextIdentityKey).(identity.Identity)
	return caller
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
