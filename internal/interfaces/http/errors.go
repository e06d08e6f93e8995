package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/exim-suite/tradeflow-api/internal/application/dto"
	"github.com/exim-suite/tradeflow-api/internal/domain"
)

// writeDomainError maps a use-case error onto the HTTP surface. Every handler
// funnels its error handling through here so the status/code mapping stays in
// one place.
//
//	ErrInvalidInput            → 400 VALIDATION
//	ErrNotFound                → 404 NOT_FOUND
//	ErrDuplicate               → 409 DUPLICATE
//	ErrAlreadyConfirmed        → 409 ALREADY_CONFIRMED
//	ErrConflict                → 409 CONFLICT
//	ErrUnauthorized            → 401 UNAUTHORIZED
//	PartialApplicationError    → 500 PARTIAL_APPLY (needs manual reconciliation)
//	anything else              → 500 INTERNAL
func writeDomainError(c *fiber.Ctx, err error) error {
	var partial *domain.PartialApplicationError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyConfirmed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CONFIRMED", Message: "invoice is already confirmed"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "unauthorized"})
	case errors.As(err, &partial):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PARTIAL_APPLY", Message: partial.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
