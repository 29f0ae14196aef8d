package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/productos.
type CreateProductRequest struct {
	Nombre       string          `json:"nombre" validate:"required"`
	Descripcion  string          `json:"descripcion,omitempty"`
	UnidadMedida string          `json:"unidad_medida,omitempty"`
	Precio       decimal.Decimal `json:"precio" validate:"required"`
	Stock        int             `json:"stock" validate:"omitempty,min=0"`
	StockMinimo  int             `json:"stock_minimo" validate:"omitempty,min=0"`
}

// UpdateProductRequest body para PUT /api/productos/:id.
// El stock no se actualiza por aquí: solo vía movimientos de inventario.
type UpdateProductRequest struct {
	Nombre       string          `json:"nombre" validate:"required"`
	Descripcion  string          `json:"descripcion,omitempty"`
	UnidadMedida string          `json:"unidad_medida,omitempty"`
	Precio       decimal.Decimal `json:"precio" validate:"required"`
	StockMinimo  int             `json:"stock_minimo" validate:"omitempty,min=0"`
	Disponible   *bool           `json:"disponible,omitempty"`
}

// ProductResponse vista de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion,omitempty"`
	UnidadMedida string          `json:"unidad_medida,omitempty"`
	Precio       decimal.Decimal `json:"precio"`
	Stock        int             `json:"stock"`
	StockMinimo  int             `json:"stock_minimo"`
	Disponible   bool            `json:"disponible"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToProductResponse mapea la entidad al DTO de respuesta.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		UnidadMedida: p.UnidadMedida,
		Precio:       p.Precio,
		Stock:        p.Stock,
		StockMinimo:  p.StockMinimo,
		Disponible:   p.Disponible,
		CreatedAt:    p.CreatedAt,
	}
}
