package repository

import (
	"time"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para
// movimientos de inventario. Solo inserción y lectura: los movimientos son
// un registro de auditoría append-only.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByType(tipo string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListBetween(desde, hasta time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
}
