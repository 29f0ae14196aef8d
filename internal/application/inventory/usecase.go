package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/notifications"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

// UseCase registra movimientos de inventario manuales (entradas de
// proveedor, ajustes, devoluciones) y expone las consultas del historial.
// Los movimientos generados por pedidos no pasan por aquí: los registra el
// flujo de pedidos dentro de su propia transacción.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
	userRepo    repository.UserRepository
	ledger      StockLedger
	recorder    MovementRecorder
	emitter     notifications.Emitter
	threshold   int // umbral global de bajo stock cuando el producto no define el suyo
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	userRepo repository.UserRepository,
	emitter notifications.Emitter,
	threshold int,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		userRepo:    userRepo,
		emitter:     emitter,
		threshold:   threshold,
		log:         log,
	}
}

// RegisterMovement aplica un movimiento manual al stock y lo deja asentado
// en el historial, todo en una transacción. Entrada y Devolucion suman;
// Salida y Ajuste restan y se rechazan si dejarían el stock negativo.
// Si el stock resultante queda en o bajo el umbral del producto se notifica
// a los administradores.
func (uc *UseCase) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if !entity.ValidMovementType(in.Tipo) {
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido: %s", domain.ErrInvalidInput, in.Tipo)
	}

	now := time.Now().UTC()
	var (
		movement *entity.InventoryMovement
		alerts   []*entity.Notification
	)

	err := uc.txRunner.RunInventory(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		var (
			product *entity.Product
			err     error
		)
		if entity.MovementAddsStock(in.Tipo) {
			product, err = uc.ledger.Release(productRepo, in.ProductID, in.Cantidad)
		} else {
			product, err = uc.ledger.Reserve(productRepo, in.ProductID, in.Cantidad)
		}
		if err != nil {
			return err
		}

		anterior := product.Stock + in.Cantidad
		if entity.MovementAddsStock(in.Tipo) {
			anterior = product.Stock - in.Cantidad
		}
		movement, err = uc.recorder.Record(movRepo, RecordInput{
			ProductID:     product.ID,
			Tipo:          in.Tipo,
			Cantidad:      in.Cantidad,
			StockAnterior: anterior,
			StockNuevo:    product.Stock,
			Motivo:        in.Motivo,
			Referencia:    in.Referencia,
			Fecha:         now,
		})
		if err != nil {
			return err
		}

		if product.LowStock(uc.threshold) {
			alerts, err = uc.lowStockAlerts(notifRepo, product, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range alerts {
		uc.emitter.Enqueue(ctx, n)
	}
	uc.log.Info().
		Str("product_id", movement.ProductID).
		Str("tipo", movement.Tipo).
		Int("cantidad", movement.Cantidad).
		Int("stock_nuevo", movement.StockNuevo).
		Msg("movimiento de inventario registrado")

	return dto.ToMovementResponse(movement), nil
}

// lowStockAlerts crea una notificación BajoInventario por cada administrador,
// dentro de la misma transacción que el movimiento.
func (uc *UseCase) lowStockAlerts(notifRepo repository.NotificationRepository, product *entity.Product, now time.Time) ([]*entity.Notification, error) {
	admins, err := uc.userRepo.ListAdmins()
	if err != nil {
		return nil, err
	}
	mensaje := fmt.Sprintf("El producto %s tiene bajo inventario. Stock actual: %d", product.Nombre, product.Stock)
	alerts := make([]*entity.Notification, 0, len(admins))
	for _, admin := range admins {
		n := &entity.Notification{
			ID:         uuid.NewString(),
			UserID:     admin.ID,
			Tipo:       entity.NotificationTypeBajoInventario,
			Mensaje:    mensaje,
			Referencia: "producto:" + product.ID,
			CreatedAt:  now,
		}
		if err := notifRepo.Create(n); err != nil {
			return nil, err
		}
		alerts = append(alerts, n)
	}
	return alerts, nil
}

// GetMovement consulta un movimiento por ID.
func (uc *UseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToMovementResponse(m), nil
}

// ListByProduct historial de movimientos de un producto, del más reciente
// al más antiguo.
func (uc *UseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	page.DefaultPage()
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	ms, err := uc.movRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.ToMovementResponses(ms), nil
}

// ListByType movimientos filtrados por tipo.
func (uc *UseCase) ListByType(ctx context.Context, tipo string, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	if !entity.ValidMovementType(tipo) {
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido: %s", domain.ErrInvalidInput, tipo)
	}
	page.DefaultPage()
	ms, err := uc.movRepo.ListByType(tipo, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.ToMovementResponses(ms), nil
}

// ListBetween movimientos en un rango de fechas.
func (uc *UseCase) ListBetween(ctx context.Context, desde, hasta time.Time, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	if hasta.Before(desde) {
		return nil, fmt.Errorf("%w: el rango de fechas es inválido", domain.ErrInvalidInput)
	}
	page.DefaultPage()
	ms, err := uc.movRepo.ListBetween(desde, hasta, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.ToMovementResponses(ms), nil
}

// CurrentStock stock vigente de un producto según el ledger.
func (uc *UseCase) CurrentStock(ctx context.Context, productID string) (int, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return product.Stock, nil
}
