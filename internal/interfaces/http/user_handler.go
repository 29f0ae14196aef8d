package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/users"
	"github.com/almacensaas/almacen-api/pkg/validate"
)

// UserHandler maneja las peticiones HTTP de administración de usuarios.
type UserHandler struct {
	uc *users.UseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *users.UseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List GET /api/usuarios — filtros opcionales ?email= y ?role=
func (h *UserHandler) List(c *fiber.Ctx) error {
	if email := c.Query("email"); email != "" {
		out, err := h.uc.GetByEmail(c.UserContext(), email)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.OK(out, ""))
	}
	if role := c.Query("role"); role != "" {
		out, err := h.uc.ListByRole(c.UserContext(), role)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.OK(out, ""))
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// GetByID GET /api/usuarios/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// Update PUT /api/usuarios/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "datos inválidos", validate.Errors(err)...)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, "usuario actualizado"))
}

// ChangePassword PATCH /api/usuarios/password — el usuario autenticado
// cambia su propia contraseña.
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "datos inválidos", validate.Errors(err)...)
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(nil, "contraseña actualizada"))
}

// Delete DELETE /api/usuarios/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(nil, "usuario eliminado"))
}
