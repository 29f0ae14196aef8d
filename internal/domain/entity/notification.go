package entity

import "time"

// Tipos de notificación.
const (
	NotificationTypePedidoCreado    = "PedidoCreado"
	NotificationTypePedidoAsignado  = "PedidoAsignado"
	NotificationTypePedidoEnCamino  = "PedidoEnCamino"
	NotificationTypePedidoCancelado = "PedidoCancelado"
	NotificationTypeCambioEstado    = "CambioEstado"
	NotificationTypeBajoInventario  = "BajoInventario"
	NotificationTypeFacturaCreada   = "FacturaCreada"
	NotificationTypeSistema         = "Sistema"
)

// Notification aviso dirigido a un usuario; la fila se escribe dentro de la
// transacción del flujo que la origina, el envío (email) es posterior y
// fire-and-forget.
type Notification struct {
	ID           string
	UserID       string
	Tipo         string
	Mensaje      string
	Leida        bool
	FechaLectura *time.Time
	Referencia   string // opcional, ej. "pedido:<id>" para limpieza en cascada
	CreatedAt    time.Time
}
