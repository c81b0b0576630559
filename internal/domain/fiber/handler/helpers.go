package handler

import (
	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func pointerID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NewValidationError("invalid pointer id", map[string]string{"id": "must be a uuid"})
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &apperror.ValidationError{Message: "invalid request body", Err: err}
	}
	return nil
}
