package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// IVARate tasa de IVA aplicada a las facturas.
var IVARate = decimal.NewFromFloat(0.16)

// Invoice factura interna emitida sobre un pedido no cancelado (una por pedido).
type Invoice struct {
	ID           string
	FolioFiscal  string
	OrderID      string
	FechaEmision time.Time
	Email        string
	Subtotal     decimal.Decimal
	IVA          decimal.Decimal
	Total        decimal.Decimal
	XMLURL       string
	PDFURL       string
	Audit
}

// CalcularIVA calcula el IVA sobre un subtotal.
func CalcularIVA(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(IVARate).Round(2)
}
