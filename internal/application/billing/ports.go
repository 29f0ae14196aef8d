package billing

import (
	"context"

	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La factura y su notificación se escriben
// juntas o no se escribe ninguna.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}
