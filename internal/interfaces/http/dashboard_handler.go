package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacensaas/almacen-api/internal/application/analytics"
	"github.com/almacensaas/almacen-api/internal/application/dto"
)

// DashboardHandler estadísticas agregadas (solo administradores).
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats GET /api/dashboard
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}
