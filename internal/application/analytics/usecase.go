package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 5 * time.Minute
)

// UseCase estadísticas del dashboard con caché read-through en Redis.
// La caché es mejor-esfuerzo: si Redis no responde se consulta la BD igual.
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
	rdb           *redis.Client
	log           *logger.Logger
}

// NewUseCase construye el caso de uso de analítica. rdb puede ser nil para
// operar sin caché.
func NewUseCase(analyticsRepo repository.AnalyticsRepository, rdb *redis.Client, log *logger.Logger) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo, rdb: rdb, log: log}
}

// Dashboard agrega pedidos por estado, total de productos, productos bajo
// stock y valor del inventario. Sirve desde caché cuando hay un snapshot
// vigente.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if cached := uc.fromCache(ctx); cached != nil {
		return cached, nil
	}

	porEstado, err := uc.analyticsRepo.OrdersByStatus()
	if err != nil {
		return nil, err
	}
	totalProductos, err := uc.analyticsRepo.CountProducts()
	if err != nil {
		return nil, err
	}
	bajoStock, err := uc.analyticsRepo.LowStockProducts()
	if err != nil {
		return nil, err
	}
	valor, err := uc.analyticsRepo.InventoryValue()
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		PedidosPorEstado:   porEstado,
		TotalProductos:     totalProductos,
		ProductosBajoStock: bajoStock,
		ValorInventario:    valor,
	}
	uc.toCache(ctx, resp)
	return resp, nil
}

// Invalidate descarta el snapshot cacheado. Se llama tras mutaciones que
// quieren reflejarse de inmediato.
func (uc *UseCase) Invalidate(ctx context.Context) {
	if uc.rdb == nil {
		return
	}
	if err := uc.rdb.Del(ctx, dashboardCacheKey).Err(); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché del dashboard")
	}
}

func (uc *UseCase) fromCache(ctx context.Context) *dto.DashboardResponse {
	if uc.rdb == nil {
		return nil
	}
	raw, err := uc.rdb.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			uc.log.Warn().Err(err).Msg("fallo leyendo caché del dashboard")
		}
		return nil
	}
	var resp dto.DashboardResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		uc.log.Warn().Err(err).Msg("snapshot de dashboard corrupto en caché")
		return nil
	}
	return &resp
}

func (uc *UseCase) toCache(ctx context.Context, resp *dto.DashboardResponse) {
	if uc.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := uc.rdb.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
		uc.log.Warn().Err(err).Msg("fallo escribiendo caché del dashboard")
	}
}
