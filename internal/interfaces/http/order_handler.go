package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/orders"
	"github.com/almacensaas/almacen-api/pkg/validate"
)

// OrderHandler maneja las peticiones HTTP del ciclo de vida de pedidos.
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create POST /api/pedidos
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "datos inválidos", validate.Errors(err)...)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "pedido creado"))
}

// GetByID GET /api/pedidos/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// List GET /api/pedidos
// Acepta ?estado= para filtrar por estado, ?user_id= para filtrar por cliente.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	if estado := c.Query("estado"); estado != "" {
		out, err := h.uc.ListByStatus(c.UserContext(), estado)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.OK(out, ""))
	}
	if userID := c.Query("user_id"); userID != "" {
		out, err := h.uc.ListByUser(c.UserContext(), userID)
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

// ListMine GET /api/pedidos/mios (pedidos del usuario autenticado)
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListByUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// ChangeStatus PATCH /api/pedidos/:id/estado
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "datos inválidos", validate.Errors(err)...)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), c.Params("id"), in.NuevoEstado)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, "estado actualizado"))
}

// AssignCourier PATCH /api/pedidos/:id/repartidor
func (h *OrderHandler) AssignCourier(c *fiber.Ctx) error {
	var in dto.AssignCourierRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "datos inválidos", validate.Errors(err)...)
	}
	out, err := h.uc.AssignCourier(c.UserContext(), c.Params("id"), in.RepartidorID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, "repartidor asignado"))
}

// Cancel POST /api/pedidos/:id/cancelar
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, "pedido cancelado"))
}

// Delete DELETE /api/pedidos/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(nil, "pedido eliminado"))
}

// AddItem POST /api/pedidos/:id/detalles
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddOrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "datos inválidos", validate.Errors(err)...)
	}
	out, err := h.uc.AddItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "línea agregada"))
}

// RemoveItem DELETE /api/pedidos/detalles/:itemId
func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, "línea retirada"))
}
