package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, folio_fiscal, order_id, fecha_emision, email, subtotal, iva, total, xml_url, pdf_url, created_at, updated_at, activo`

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una factura. order_id tiene constraint único: un pedido,
// una factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, folio_fiscal, order_id, fecha_emision, email, subtotal, iva, total, xml_url, pdf_url, created_at, updated_at, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.FolioFiscal, invoice.OrderID, invoice.FechaEmision,
		invoice.Email, invoice.Subtotal, invoice.IVA, invoice.Total,
		invoice.XMLURL, invoice.PDFURL,
		invoice.CreatedAt, invoice.UpdatedAt, invoice.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return scanInvoiceRow(r.q.QueryRow(context.Background(), query, id))
}

// GetByOrder obtiene la factura de un pedido.
func (r *InvoiceRepo) GetByOrder(orderID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1`
	return scanInvoiceRow(r.q.QueryRow(context.Background(), query, orderID))
}

// List lista facturas con paginación, de la más reciente a la más antigua.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY fecha_emision DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var f entity.Invoice
		if err := rows.Scan(
			&f.ID, &f.FolioFiscal, &f.OrderID, &f.FechaEmision, &f.Email,
			&f.Subtotal, &f.IVA, &f.Total, &f.XMLURL, &f.PDFURL,
			&f.CreatedAt, &f.UpdatedAt, &f.Active,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Count cantidad total de facturas.
func (r *InvoiceRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM invoices`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

func scanInvoiceRow(row pgx.Row) (*entity.Invoice, error) {
	var f entity.Invoice
	err := row.Scan(
		&f.ID, &f.FolioFiscal, &f.OrderID, &f.FechaEmision, &f.Email,
		&f.Subtotal, &f.IVA, &f.Total, &f.XMLURL, &f.PDFURL,
		&f.CreatedAt, &f.UpdatedAt, &f.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &f, nil
}
