package repository

import "github.com/almacensaas/almacen-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice (DIP).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByOrder(orderID string) (*entity.Invoice, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	Count() (int, error)
}
