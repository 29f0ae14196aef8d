package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacensaas/almacen-api/internal/application/billing"
	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/pkg/validate"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	uc *billing.UseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.UseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create POST /api/facturas
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "datos inválidos", validate.Errors(err)...)
	}
	out, err := h.uc.CrearFactura(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "factura emitida"))
}

// GetByID GET /api/facturas/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// List GET /api/facturas
// Acepta ?order_id= para buscar la factura de un pedido.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	if orderID := c.Query("order_id"); orderID != "" {
		out, err := h.uc.GetByOrder(c.UserContext(), orderID)
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
