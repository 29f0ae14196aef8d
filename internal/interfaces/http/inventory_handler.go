package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/inventory"
	"github.com/almacensaas/almacen-api/pkg/validate"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de inventario.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement POST /api/inventario/movimientos
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "datos inválidos", validate.Errors(err)...)
	}
	out, err := h.uc.RegisterMovement(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "movimiento registrado"))
}

// GetMovement GET /api/inventario/movimientos/:id
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.uc.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// ListMovements GET /api/inventario/movimientos
// Filtros: ?product_id=, ?tipo=, ?desde=&hasta= (RFC 3339).
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}

	if productID := c.Query("product_id"); productID != "" {
		out, err := h.uc.ListByProduct(c.UserContext(), productID, page)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.OK(out, ""))
	}
	if tipo := c.Query("tipo"); tipo != "" {
		out, err := h.uc.ListByType(c.UserContext(), tipo, page)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.OK(out, ""))
	}
	desdeStr, hastaStr := c.Query("desde"), c.Query("hasta")
	if desdeStr == "" || hastaStr == "" {
		return badRequest(c, "se requiere product_id, tipo, o el rango desde/hasta")
	}
	desde, err := time.Parse(time.RFC3339, desdeStr)
	if err != nil {
		return badRequest(c, "desde inválido, se espera RFC 3339")
	}
	hasta, err := time.Parse(time.RFC3339, hastaStr)
	if err != nil {
		return badRequest(c, "hasta inválido, se espera RFC 3339")
	}
	out, err := h.uc.ListBetween(c.UserContext(), desde, hasta, page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// CurrentStock GET /api/inventario/stock/:productId
func (h *InventoryHandler) CurrentStock(c *fiber.Ctx) error {
	stock, err := h.uc.CurrentStock(c.UserContext(), c.Params("productId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"product_id": c.Params("productId"), "stock": stock}, ""))
}
