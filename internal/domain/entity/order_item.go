package entity

import "github.com/shopspring/decimal"

// OrderItem una línea de un pedido. PrecioUnitario se captura del producto
// al momento de crear la línea y no se relee después.
type OrderItem struct {
	ID             string
	OrderID        string
	ProductID      string
	NombreProducto string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal // Cantidad × PrecioUnitario
	Audit
}

// NewOrderItemSubtotal calcula el subtotal de una línea.
func NewOrderItemSubtotal(cantidad int, precio decimal.Decimal) decimal.Decimal {
	return precio.Mul(decimal.NewFromInt(int64(cantidad)))
}
