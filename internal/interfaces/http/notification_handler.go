package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/notifications"
)

// NotificationHandler maneja la bandeja de notificaciones del usuario
// autenticado.
type NotificationHandler struct {
	uc *notifications.UseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notifications.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List GET /api/notificaciones
// Acepta ?tipo= para filtrar por tipo de notificación.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if tipo := c.Query("tipo"); tipo != "" {
		out, err := h.uc.ListByUserAndType(c.UserContext(), userID, tipo)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.OK(out, ""))
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByUser(c.UserContext(), userID, page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// CountUnread GET /api/notificaciones/sin-leer
func (h *NotificationHandler) CountUnread(c *fiber.Ctx) error {
	n, err := h.uc.CountUnread(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"sin_leer": n}, ""))
}

// MarkRead PATCH /api/notificaciones/:id/leida
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(nil, "notificación marcada como leída"))
}

// MarkAllRead PATCH /api/notificaciones/leidas
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(c.UserContext(), GetUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(nil, "todas las notificaciones marcadas como leídas"))
}

// Delete DELETE /api/notificaciones/:id
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(nil, "notificación eliminada"))
}
