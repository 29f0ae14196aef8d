package inventory

import (
	"context"

	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para los movimientos
// de inventario registrados fuera del flujo de pedidos.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}
