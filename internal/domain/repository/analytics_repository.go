package repository

import "github.com/shopspring/decimal"

// LowStockRow fila de producto bajo su umbral de reorden.
type LowStockRow struct {
	ProductID   string          `json:"product_id"`
	Nombre      string          `json:"nombre"`
	Stock       int             `json:"stock"`
	StockMinimo int             `json:"stock_minimo"`
	Precio      decimal.Decimal `json:"precio"`
}

// AnalyticsRepository consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	OrdersByStatus() (map[string]int, error)
	CountProducts() (int, error)
	LowStockProducts() ([]LowStockRow, error)
	InventoryValue() (decimal.Decimal, error)
}
