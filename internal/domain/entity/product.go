package entity

import "github.com/shopspring/decimal"

// Product representa un producto del almacén.
// Stock es el contador autoritativo y nunca puede quedar negativo; solo se
// muta dentro de transacciones que registran el movimiento de inventario
// correspondiente (ver application/inventory).
type Product struct {
	ID          string
	Nombre      string
	Descripcion string
	UnidadMedida string
	Precio      decimal.Decimal // precio de venta unitario
	Stock       int             // invariante: >= 0 tras cada commit
	StockMinimo int             // umbral de alerta de stock bajo
	Disponible  bool
	Audit
}

// LowStock indica si el producto está en o por debajo de su umbral de alerta.
func (p *Product) LowStock(globalThreshold int) bool {
	threshold := p.StockMinimo
	if threshold <= 0 {
		threshold = globalThreshold
	}
	return p.Stock <= threshold
}
