package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. Entregado y Cancelado son terminales.
const (
	OrderStatusPendiente     = "Pendiente"
	OrderStatusEnPreparacion = "EnPreparacion"
	OrderStatusEnviado       = "Enviado"
	OrderStatusEntregado     = "Entregado"
	OrderStatusCancelado     = "Cancelado"
)

// OrderStatuses estados válidos, en orden del flujo feliz.
var OrderStatuses = []string{
	OrderStatusPendiente,
	OrderStatusEnPreparacion,
	OrderStatusEnviado,
	OrderStatusEntregado,
	OrderStatusCancelado,
}

// ValidOrderStatus verifica que el string sea un estado definido.
func ValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// OrderNumber deriva el número legible del pedido a partir de su UUID.
// Un timestamp no sirve: dos pedidos en el mismo milisegundo colisionarían.
func OrderNumber(id string) string {
	return "PED-" + strings.ToUpper(strings.ReplaceAll(id, "-", ""))[:16]
}

// Order representa un pedido con sus líneas de detalle.
// Total siempre es la suma de los subtotales de las líneas vigentes.
type Order struct {
	ID             string
	Numero         string // derivado del UUID, ej. PED-9F3C2A71B4D84E06
	UserID         string
	FechaPedido    time.Time
	Estado         string
	Subtotal       decimal.Decimal
	Impuestos      decimal.Decimal
	CostoEnvio     decimal.Decimal
	Total          decimal.Decimal
	DireccionEnvio string
	Observaciones  string
	RepartidorID   *string
	FechaAsignacion *time.Time
	FechaEntrega   *time.Time
	Detalles       []*OrderItem
	Audit
}

// Terminal indica si el pedido está en un estado que prohíbe toda mutación
// (con la única excepción de que Cancelado permite eliminación).
func (o *Order) Terminal() bool {
	return o.Estado == OrderStatusEntregado || o.Estado == OrderStatusCancelado
}

// CanAddOrRemoveItems solo los pedidos pendientes admiten cambios de líneas.
func (o *Order) CanAddOrRemoveItems() bool {
	return o.Estado == OrderStatusPendiente
}

// CanAssignCourier repartidores solo se asignan en Pendiente o EnPreparacion.
func (o *Order) CanAssignCourier() bool {
	return o.Estado == OrderStatusPendiente || o.Estado == OrderStatusEnPreparacion
}

// CanCancel un pedido entregado o ya cancelado no se puede cancelar.
func (o *Order) CanCancel() bool {
	return !o.Terminal()
}

// CanDelete solo se eliminan pedidos Pendiente o Cancelado.
func (o *Order) CanDelete() bool {
	return o.Estado == OrderStatusPendiente || o.Estado == OrderStatusCancelado
}

// Reference referencia estable usada en notificaciones y movimientos.
func (o *Order) Reference() string {
	return "pedido:" + o.ID
}
