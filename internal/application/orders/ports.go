package orders

import (
	"context"

	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Todo el flujo de un pedido (cabecera,
// líneas, stock, movimientos, notificaciones) ocurre dentro de una sola
// transacción: o se aplica completo o no deja rastro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}
