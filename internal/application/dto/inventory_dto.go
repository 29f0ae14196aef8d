package dto

import (
	"time"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventario/movimientos.
type RegisterMovementRequest struct {
	ProductID  string `json:"product_id" validate:"required,uuid4"`
	Tipo       string `json:"tipo" validate:"required"`
	Cantidad   int    `json:"cantidad" validate:"required,gt=0"`
	Motivo     string `json:"motivo" validate:"required"`
	Referencia string `json:"referencia,omitempty"`
}

// MovementResponse vista de un movimiento de inventario.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Tipo          string    `json:"tipo"`
	Cantidad      int       `json:"cantidad"`
	StockAnterior int       `json:"stock_anterior"`
	StockNuevo    int       `json:"stock_nuevo"`
	Motivo        string    `json:"motivo"`
	Referencia    string    `json:"referencia,omitempty"`
	Fecha         time.Time `json:"fecha"`
}

// ToMovementResponse mapea la entidad al DTO de respuesta.
func ToMovementResponse(m *entity.InventoryMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		Referencia:    m.Referencia,
		Fecha:         m.Fecha,
	}
}

// ToMovementResponses mapea una lista de movimientos.
func ToMovementResponses(ms []*entity.InventoryMovement) []*MovementResponse {
	out := make([]*MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
