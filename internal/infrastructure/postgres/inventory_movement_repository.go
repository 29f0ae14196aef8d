package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, product_id, tipo, cantidad, stock_anterior, stock_nuevo, motivo, referencia, fecha, created_at`

// InventoryMovementRepo implementación del puerto InventoryMovementRepository
// sobre PostgreSQL (usable con pool o tx). La tabla es append-only: no hay
// UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta un movimiento de inventario.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, product_id, tipo, cantidad, stock_anterior, stock_nuevo, motivo, referencia, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Tipo, m.Cantidad, m.StockAnterior, m.StockNuevo,
		m.Motivo, m.Referencia, m.Fecha, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	var m entity.InventoryMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Tipo, &m.Cantidad, &m.StockAnterior, &m.StockNuevo,
		&m.Motivo, &m.Referencia, &m.Fecha, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory movement: %w", err)
	}
	return &m, nil
}

// ListByProduct historial de un producto, del más reciente al más antiguo.
func (r *InventoryMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE product_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByType movimientos de un tipo dado.
func (r *InventoryMovementRepo) ListByType(tipo string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE tipo = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tipo, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by type: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListBetween movimientos en un rango de fechas inclusivo.
func (r *InventoryMovementRepo) ListBetween(desde, hasta time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE fecha >= $1 AND fecha <= $2 ORDER BY fecha DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, desde, hasta, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements between: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Tipo, &m.Cantidad, &m.StockAnterior, &m.StockNuevo,
			&m.Motivo, &m.Referencia, &m.Fecha, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
