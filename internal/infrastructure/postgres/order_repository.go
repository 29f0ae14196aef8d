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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, numero, user_id, fecha_pedido, estado, subtotal, impuestos, costo_envio, total,
	direccion_envio, observaciones, repartidor_id, fecha_asignacion, fecha_entrega, created_at, updated_at, activo`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// Solo persiste la cabecera; las líneas viven en OrderItemRepo.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de un pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, numero, user_id, fecha_pedido, estado, subtotal, impuestos, costo_envio, total,
			direccion_envio, observaciones, repartidor_id, fecha_asignacion, fecha_entrega, created_at, updated_at, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Numero, order.UserID, order.FechaPedido, order.Estado,
		order.Subtotal, order.Impuestos, order.CostoEnvio, order.Total,
		order.DireccionEnvio, order.Observaciones, order.RepartidorID,
		order.FechaAsignacion, order.FechaEntrega,
		order.CreatedAt, order.UpdatedAt, order.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Numero, &o.UserID, &o.FechaPedido, &o.Estado,
		&o.Subtotal, &o.Impuestos, &o.CostoEnvio, &o.Total,
		&o.DireccionEnvio, &o.Observaciones, &o.RepartidorID,
		&o.FechaAsignacion, &o.FechaEntrega,
		&o.CreatedAt, &o.UpdatedAt, &o.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// Update actualiza la cabecera de un pedido.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET estado = $2, subtotal = $3, impuestos = $4, costo_envio = $5, total = $6,
			direccion_envio = $7, observaciones = $8, repartidor_id = $9, fecha_asignacion = $10,
			fecha_entrega = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Estado, order.Subtotal, order.Impuestos, order.CostoEnvio, order.Total,
		order.DireccionEnvio, order.Observaciones, order.RepartidorID, order.FechaAsignacion,
		order.FechaEntrega, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// List lista pedidos con paginación, del más reciente al más antiguo.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY fecha_pedido DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListByStatus lista pedidos en un estado dado.
func (r *OrderRepo) ListByStatus(estado string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE estado = $1 ORDER BY fecha_pedido DESC`
	rows, err := r.q.Query(context.Background(), query, estado)
	if err != nil {
		return nil, fmt.Errorf("list orders by status: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListByUser lista pedidos de un cliente.
func (r *OrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY fecha_pedido DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// Count cantidad total de pedidos.
func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM orders`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// Delete elimina la cabecera de un pedido por ID.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func scanOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.Numero, &o.UserID, &o.FechaPedido, &o.Estado,
			&o.Subtotal, &o.Impuestos, &o.CostoEnvio, &o.Total,
			&o.DireccionEnvio, &o.Observaciones, &o.RepartidorID,
			&o.FechaAsignacion, &o.FechaEntrega,
			&o.CreatedAt, &o.UpdatedAt, &o.Active,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
