package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// CreateInvoiceRequest body para POST /api/facturas.
type CreateInvoiceRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid4"`
}

// InvoiceResponse vista de una factura.
type InvoiceResponse struct {
	ID           string          `json:"id"`
	FolioFiscal  string          `json:"folio_fiscal"`
	OrderID      string          `json:"order_id"`
	FechaEmision time.Time       `json:"fecha_emision"`
	Email        string          `json:"email"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	IVA          decimal.Decimal `json:"iva"`
	Total        decimal.Decimal `json:"total"`
	XMLURL       string          `json:"xml_url,omitempty"`
	PDFURL       string          `json:"pdf_url,omitempty"`
}

// ToInvoiceResponse mapea la entidad al DTO de respuesta.
func ToInvoiceResponse(f *entity.Invoice) *InvoiceResponse {
	if f == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:           f.ID,
		FolioFiscal:  f.FolioFiscal,
		OrderID:      f.OrderID,
		FechaEmision: f.FechaEmision,
		Email:        f.Email,
		Subtotal:     f.Subtotal,
		IVA:          f.IVA,
		Total:        f.Total,
		XMLURL:       f.XMLURL,
		PDFURL:       f.PDFURL,
	}
}
