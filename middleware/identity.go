package middleware

import (
	"github.com/gofiber/fiber/v2"

	"resourceshelf/web/internal/resources"
)

const identityKey = "identity"

// Identity attaches the identity new resources are attributed to. There is no
// sign-in, so every request gets defaultEmail; a session-backed resolver can
// replace this without touching the upload workflow.
func Identity(defaultEmail string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(identityKey, resources.Identity{CreatorEmail: defaultEmail})
		return c.Next()
	}
}

// IdentityFrom returns the identity set by Identity, or the zero Identity.
func IdentityFrom(c *fiber.Ctx) resources.Identity {
	if id, ok := c.Locals(identityKey).(resources.Identity); ok {
		return id
	}
	return resources.Identity{}
}
