package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// CreateOrderLine una línea solicitada: producto y cantidad.
type CreateOrderLine struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Cantidad  int    `json:"cantidad" validate:"required,gt=0"`
}

// CreateOrderRequest body para POST /api/pedidos.
type CreateOrderRequest struct {
	UserID         string            `json:"user_id" validate:"required,uuid4"`
	DireccionEnvio string            `json:"direccion_envio" validate:"required"`
	Observaciones  string            `json:"observaciones,omitempty"`
	CostoEnvio     decimal.Decimal   `json:"costo_envio" validate:"omitempty"`
	Detalles       []CreateOrderLine `json:"detalles" validate:"required,min=1,dive"`
}

// ChangeOrderStatusRequest body para PATCH /api/pedidos/:id/estado.
type ChangeOrderStatusRequest struct {
	NuevoEstado string `json:"nuevo_estado" validate:"required"`
}

// AssignCourierRequest body para PATCH /api/pedidos/:id/repartidor.
type AssignCourierRequest struct {
	RepartidorID string `json:"repartidor_id" validate:"required,uuid4"`
}

// AddOrderItemRequest body para POST /api/pedidos/:id/detalles.
type AddOrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Cantidad  int    `json:"cantidad" validate:"required,gt=0"`
}

// OrderItemResponse una línea del pedido.
type OrderItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	NombreProducto string          `json:"nombre_producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// OrderResponse vista completa de un pedido.
type OrderResponse struct {
	ID             string              `json:"id"`
	Numero         string              `json:"numero"`
	UserID         string              `json:"user_id"`
	FechaPedido    time.Time           `json:"fecha_pedido"`
	Estado         string              `json:"estado"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Impuestos      decimal.Decimal     `json:"impuestos"`
	CostoEnvio     decimal.Decimal     `json:"costo_envio"`
	Total          decimal.Decimal     `json:"total"`
	DireccionEnvio string              `json:"direccion_envio"`
	Observaciones  string              `json:"observaciones,omitempty"`
	RepartidorID   *string             `json:"repartidor_id,omitempty"`
	Detalles       []OrderItemResponse `json:"detalles"`
}

// ToOrderResponse mapea la entidad al DTO de respuesta.
func ToOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	resp := &OrderResponse{
		ID:             o.ID,
		Numero:         o.Numero,
		UserID:         o.UserID,
		FechaPedido:    o.FechaPedido,
		Estado:         o.Estado,
		Subtotal:       o.Subtotal,
		Impuestos:      o.Impuestos,
		CostoEnvio:     o.CostoEnvio,
		Total:          o.Total,
		DireccionEnvio: o.DireccionEnvio,
		Observaciones:  o.Observaciones,
		RepartidorID:   o.RepartidorID,
		Detalles:       make([]OrderItemResponse, 0, len(o.Detalles)),
	}
	for _, d := range o.Detalles {
		resp.Detalles = append(resp.Detalles, ToOrderItemResponse(d))
	}
	return resp
}

// ToOrderItemResponse mapea una línea al DTO de respuesta.
func ToOrderItemResponse(d *entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:             d.ID,
		ProductID:      d.ProductID,
		NombreProducto: d.NombreProducto,
		Cantidad:       d.Cantidad,
		PrecioUnitario: d.PrecioUnitario,
		Subtotal:       d.Subtotal,
	}
}
