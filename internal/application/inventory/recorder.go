package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

// RecordInput datos de un movimiento a registrar.
type RecordInput struct {
	ProductID     string
	Tipo          string
	Cantidad      int
	StockAnterior int
	StockNuevo    int
	Motivo        string
	Referencia    string
	Fecha         time.Time
}

// MovementRecorder escribe el registro de auditoría de cada cambio de stock.
// Todo cambio de stock va acompañado de exactamente un movimiento, dentro de
// la misma transacción; el recorder nunca actualiza ni elimina.
type MovementRecorder struct{}

// Record inserta el movimiento. Valida cantidad y tipo; un movimiento con
// cantidad <= 0 o tipo desconocido es un bug del llamador.
func (MovementRecorder) Record(movRepo repository.InventoryMovementRepository, in RecordInput) (*entity.InventoryMovement, error) {
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Tipo) {
		return nil, domain.ErrInvalidInput
	}
	fecha := in.Fecha
	if fecha.IsZero() {
		fecha = time.Now().UTC()
	}
	m := &entity.InventoryMovement{
		ID:            uuid.NewString(),
		ProductID:     in.ProductID,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		StockAnterior: in.StockAnterior,
		StockNuevo:    in.StockNuevo,
		Motivo:        in.Motivo,
		Referencia:    in.Referencia,
		Fecha:         fecha,
		CreatedAt:     fecha,
	}
	if err := movRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}
