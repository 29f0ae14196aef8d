package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

var _ repository.OrderItemRepository = (*OrderItemRepo)(nil)

const orderItemColumns = `id, order_id, product_id, nombre_producto, cantidad, precio_unitario, subtotal, created_at, updated_at, activo`

// OrderItemRepo implementación del puerto OrderItemRepository sobre PostgreSQL (usable con pool o tx).
type OrderItemRepo struct {
	q Querier
}

// NewOrderItemRepository construye el adaptador de persistencia para líneas de pedido. Pasar pool o tx (Querier).
func NewOrderItemRepository(q Querier) *OrderItemRepo {
	return &OrderItemRepo{q: q}
}

// Create persiste una línea de pedido.
func (r *OrderItemRepo) Create(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, nombre_producto, cantidad, precio_unitario, subtotal, created_at, updated_at, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.NombreProducto,
		item.Cantidad, item.PrecioUnitario, item.Subtotal,
		item.CreatedAt, item.UpdatedAt, item.Active,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *OrderItemRepo) GetByID(id string) (*entity.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1`
	var d entity.OrderItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.OrderID, &d.ProductID, &d.NombreProducto,
		&d.Cantidad, &d.PrecioUnitario, &d.Subtotal,
		&d.CreatedAt, &d.UpdatedAt, &d.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return &d, nil
}

// ListByOrder lista las líneas de un pedido en orden de creación.
func (r *OrderItemRepo) ListByOrder(orderID string) ([]*entity.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var d entity.OrderItem
		if err := rows.Scan(
			&d.ID, &d.OrderID, &d.ProductID, &d.NombreProducto,
			&d.Cantidad, &d.PrecioUnitario, &d.Subtotal,
			&d.CreatedAt, &d.UpdatedAt, &d.Active,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ExistsByProduct indica si alguna línea de pedido referencia al producto.
func (r *OrderItemRepo) ExistsByProduct(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM order_items WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists order item by product: %w", err)
	}
	return exists, nil
}

// Delete elimina una línea por ID.
func (r *OrderItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	return nil
}

// DeleteByOrder elimina todas las líneas de un pedido.
func (r *OrderItemRepo) DeleteByOrder(orderID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}
