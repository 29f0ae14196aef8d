package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// OrdersByStatus cantidad de pedidos agrupados por estado.
func (r *AnalyticsRepo) OrdersByStatus() (map[string]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT estado, COUNT(*) FROM orders GROUP BY estado`)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var estado string
		var n int
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, fmt.Errorf("scan orders by status: %w", err)
		}
		out[estado] = n
	}
	return out, rows.Err()
}

// CountProducts cantidad total de productos del catálogo.
func (r *AnalyticsRepo) CountProducts() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// LowStockProducts productos en o bajo su umbral de reorden.
func (r *AnalyticsRepo) LowStockProducts() ([]repository.LowStockRow, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, nombre, stock, stock_minimo, precio
		FROM products
		WHERE stock_minimo > 0 AND stock <= stock_minimo
		ORDER BY stock ASC`)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.Nombre, &row.Stock, &row.StockMinimo, &row.Precio); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// InventoryValue valor del inventario a precio de venta.
func (r *AnalyticsRepo) InventoryValue() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(precio * stock), 0) FROM products`).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("inventory value: %w", err)
	}
	return total, nil
}
