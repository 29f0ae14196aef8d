package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/domain"
)

// fail mapea errores de dominio a códigos HTTP y responde con el sobre
// uniforme. Todo lo no reconocido es un 500 con mensaje genérico para no
// filtrar detalles internos.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail(err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("credenciales inválidas"))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("acceso denegado"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("error interno"))
	}
}

// badRequest respuesta 400 con errores de validación campo a campo.
func badRequest(c *fiber.Ctx, message string, errs ...string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(message, errs...))
}
