package dto

import (
	"time"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// NotificationResponse vista de una notificación.
type NotificationResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Tipo         string     `json:"tipo"`
	Mensaje      string     `json:"mensaje"`
	Leida        bool       `json:"leida"`
	FechaLectura *time.Time `json:"fecha_lectura,omitempty"`
	Referencia   string     `json:"referencia,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToNotificationResponse mapea la entidad al DTO de respuesta.
func ToNotificationResponse(n *entity.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}
	return &NotificationResponse{
		ID:           n.ID,
		UserID:       n.UserID,
		Tipo:         n.Tipo,
		Mensaje:      n.Mensaje,
		Leida:        n.Leida,
		FechaLectura: n.FechaLectura,
		Referencia:   n.Referencia,
		CreatedAt:    n.CreatedAt,
	}
}

// ToNotificationResponses mapea una lista de notificaciones.
func ToNotificationResponses(ns []*entity.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, ToNotificationResponse(n))
	}
	return out
}
