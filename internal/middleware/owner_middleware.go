package middleware

import (
	"strings"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/util"
	"github.com/gofiber/fiber/v2"
)

// OwnerHeader carries the authenticated user id set by the upstream auth layer.
const OwnerHeader = "X-User-ID"

const ownerLocal = "owner_id"

// RequireOwner rejects requests without an owner id and stores it for handlers.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner := strings.TrimSpace(c.Get(OwnerHeader))
		if owner == "" {
			return util.ErrorFromErr(c, &apperror.UnauthorizedError{Message: OwnerHeader + " header is required"}, "unauthorized")
		}
		c.Locals(ownerLocal, owner)
		return c.Next()
	}
}

// OwnerID returns the id stored by RequireOwner.
func OwnerID(c *fiber.Ctx) string {
	owner, _ := c.Locals(ownerLocal).(string)
	return owner
}
