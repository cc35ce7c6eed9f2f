package server

import (
	"errors"

	"foodbridge/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// donorFromContext returns the donor ID placed in locals by the auth
// middleware.
func donorFromContext(c *fiber.Ctx) (uuid.UUID, error) {
	donorID, ok := c.Locals("donorID").(uuid.UUID)
	if !ok {
		return uuid.Nil, models.NewUnauthorizedError("Authentication required")
	}
	return donorID, nil
}

// parseIDParam parses the :id route parameter as a UUID.
func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, models.NewValidationError("Invalid ID format")
	}
	return id, nil
}

// statusForError maps application error codes to HTTP status codes.
// Lifecycle conflicts (already claimed, already or not yet picked up)
// all surface as 409 so clients can distinguish races from bad input.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeForbidden:
		return fiber.StatusForbidden
	case models.CodeConflict, models.CodeAlreadyClaimed, models.CodeAlreadyPickedUp, models.CodeNotYetClaimed:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}
