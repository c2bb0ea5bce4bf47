package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errNoSessionUser = errors.New("no authenticated user in context")

// sessionUserId extracts the authenticated user's id placed in locals
// by the JWT middleware.
func sessionUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw := ctx.Locals("user_id")
	if raw == nil {
		return uuid.Nil, errNoSessionUser
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, errNoSessionUser
	}
	return uuid.Parse(str)
}
