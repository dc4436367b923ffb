package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/core/llm"
	"github.com/grupovitalis/connect-api/internal/modules/connect/services"
)

// respondError writes the single error envelope used across the API
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"erro": message})
}

// respondServiceError maps domain errors onto HTTP statuses
func respondServiceError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return respondError(c, fiber.StatusNotFound, "registro não encontrado")

	case errors.Is(err, services.ErrLeadAlreadyActive),
		errors.Is(err, services.ErrAttendantBusy):
		return respondError(c, fiber.StatusConflict, err.Error())

	case errors.Is(err, services.ErrLeadClosed),
		errors.Is(err, services.ErrLeadNotClosed),
		errors.Is(err, services.ErrLossReasonMissing),
		errors.Is(err, services.ErrReopenNoteMissing),
		errors.Is(err, services.ErrServiceMissing),
		errors.Is(err, services.ErrInvalidKind),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrInvalidTransition):
		return respondError(c, fiber.StatusBadRequest, err.Error())

	case errors.Is(err, llm.ErrRateLimited):
		return respondError(c, fiber.StatusTooManyRequests, "limite de requisições de IA atingido, tente novamente em instantes")

	case errors.Is(err, llm.ErrNoCredits):
		return respondError(c, fiber.StatusPaymentRequired, "créditos de IA esgotados")

	case errors.As(err, &fiberErr):
		return respondError(c, fiberErr.Code, fiberErr.Message)
	}

	return respondError(c, fiber.StatusInternalServerError, "erro interno")
}
