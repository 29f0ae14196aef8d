package dto

import (
	"github.com/shopspring/decimal"

	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

// DashboardResponse estadísticas agregadas de pedidos e inventario.
type DashboardResponse struct {
	PedidosPorEstado   map[string]int           `json:"pedidos_por_estado"`
	TotalProductos     int                      `json:"total_productos"`
	ProductosBajoStock []repository.LowStockRow `json:"productos_bajo_stock"`
	ValorInventario    decimal.Decimal          `json:"valor_inventario"`
}
