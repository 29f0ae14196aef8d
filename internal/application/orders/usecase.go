package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/inventory"
	"github.com/almacensaas/almacen-api/internal/application/notifications"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

// UseCase orquesta el ciclo de vida completo de un pedido: creación con
// reserva de stock, cambios de estado, asignación de repartidor,
// cancelación con reposición, eliminación y cambios de líneas. Cada
// operación que muta stock corre en una sola transacción junto con sus
// movimientos de inventario y notificaciones.
type UseCase struct {
	txRunner  TxRunner
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	itemRepo  repository.OrderItemRepository
	ledger    inventory.StockLedger
	recorder  inventory.MovementRecorder
	emitter   notifications.Emitter
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de pedidos. Los repos inyectados aquí
// se usan solo para consultas fuera de transacción; las mutaciones reciben
// sus repos del TxRunner.
func NewUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	emitter notifications.Emitter,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		emitter:   emitter,
		log:       log,
	}
}

// Create crea un pedido completo en una transacción: cabecera en Pendiente,
// una línea y un movimiento Salida por cada producto solicitado, total
// acumulado y notificación al cliente. Si cualquier línea falla (producto
// inexistente, stock insuficiente) no queda nada persistido.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Detalles) == 0 {
		return nil, fmt.Errorf("%w: el pedido debe tener al menos una línea", domain.ErrInvalidInput)
	}
	if in.CostoEnvio.IsNegative() {
		return nil, fmt.Errorf("%w: el costo de envío no puede ser negativo", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()
	order := &entity.Order{
		ID:             orderID,
		Numero:         entity.OrderNumber(orderID),
		UserID:         user.ID,
		FechaPedido:    now,
		Estado:         entity.OrderStatusPendiente,
		Subtotal:       decimal.Zero,
		Impuestos:      decimal.Zero,
		CostoEnvio:     in.CostoEnvio,
		Total:          decimal.Zero,
		DireccionEnvio: in.DireccionEnvio,
		Observaciones:  in.Observaciones,
		Audit:          entity.NewAudit(now),
	}

	var notif *entity.Notification
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		// La cabecera se persiste primero para que líneas y movimientos
		// referencien su ID; si algo falla después, el rollback la borra.
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, line := range in.Detalles {
			product, err := uc.ledger.Reserve(productRepo, line.ProductID, line.Cantidad)
			if err != nil {
				return err
			}

			item := &entity.OrderItem{
				ID:             uuid.NewString(),
				OrderID:        order.ID,
				ProductID:      product.ID,
				NombreProducto: product.Nombre,
				Cantidad:       line.Cantidad,
				PrecioUnitario: product.Precio,
				Subtotal:       entity.NewOrderItemSubtotal(line.Cantidad, product.Precio),
				Audit:          entity.NewAudit(now),
			}
			if err := itemRepo.Create(item); err != nil {
				return err
			}

			if _, err := uc.recorder.Record(movRepo, inventory.RecordInput{
				ProductID:     product.ID,
				Tipo:          entity.MovementTypeSalida,
				Cantidad:      line.Cantidad,
				StockAnterior: product.Stock + line.Cantidad,
				StockNuevo:    product.Stock,
				Motivo:        "Pedido #" + order.Numero,
				Referencia:    order.Reference(),
				Fecha:         now,
			}); err != nil {
				return err
			}

			order.Detalles = append(order.Detalles, item)
			subtotal = subtotal.Add(item.Subtotal)
		}

		order.Subtotal = subtotal
		order.Total = subtotal
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		notif = &entity.Notification{
			ID:         uuid.NewString(),
			UserID:     order.UserID,
			Tipo:       entity.NotificationTypePedidoCreado,
			Mensaje:    fmt.Sprintf("Tu pedido %s ha sido creado exitosamente. Total: $%s", order.Numero, order.Total.StringFixed(2)),
			Referencia: order.Reference(),
			CreatedAt:  now,
		}
		return notifRepo.Create(notif)
	})
	if err != nil {
		return nil, err
	}

	uc.emitter.Enqueue(ctx, notif)
	uc.log.Info().
		Str("order_id", order.ID).
		Str("numero", order.Numero).
		Int("lineas", len(order.Detalles)).
		Str("total", order.Total.StringFixed(2)).
		Msg("pedido creado")

	return dto.ToOrderResponse(order), nil
}

// GetByID consulta un pedido con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.loadOrder(id)
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}

// List pedidos paginados con total.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PagedResult[*dto.OrderResponse], error) {
	page.DefaultPage()
	os, err := uc.orderRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	items := make([]*dto.OrderResponse, 0, len(os))
	for _, o := range os {
		items = append(items, dto.ToOrderResponse(o))
	}
	return &dto.PagedResult[*dto.OrderResponse]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

// ListByStatus pedidos en un estado dado.
func (uc *UseCase) ListByStatus(ctx context.Context, estado string) ([]*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(estado) {
		return nil, fmt.Errorf("%w: estado desconocido: %s", domain.ErrInvalidInput, estado)
	}
	os, err := uc.orderRepo.ListByStatus(estado)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(os))
	for _, o := range os {
		out = append(out, dto.ToOrderResponse(o))
	}
	return out, nil
}

// ListByUser pedidos de un cliente.
func (uc *UseCase) ListByUser(ctx context.Context, userID string) ([]*dto.OrderResponse, error) {
	os, err := uc.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(os))
	for _, o := range os {
		out = append(out, dto.ToOrderResponse(o))
	}
	return out, nil
}

// ChangeStatus cambia el estado de un pedido no terminal y notifica al
// cliente. Cancelar exige pasar por Cancel, que además repone stock.
func (uc *UseCase) ChangeStatus(ctx context.Context, id, nuevoEstado string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(nuevoEstado) {
		return nil, fmt.Errorf("%w: estado desconocido: %s", domain.ErrInvalidInput, nuevoEstado)
	}
	if nuevoEstado == entity.OrderStatusCancelado {
		return nil, fmt.Errorf("%w: la cancelación repone stock y debe hacerse por la operación de cancelar", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	var (
		order *entity.Order
		notif *entity.Notification
	)
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.OrderItemRepository,
		_ repository.ProductRepository,
		_ repository.InventoryMovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Terminal() {
			return &domain.InvalidTransitionError{From: order.Estado, To: nuevoEstado}
		}

		anterior := order.Estado
		order.Estado = nuevoEstado
		if nuevoEstado == entity.OrderStatusEntregado {
			order.FechaEntrega = &now
		}
		order.Touch(now)
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		notif = &entity.Notification{
			ID:         uuid.NewString(),
			UserID:     order.UserID,
			Tipo:       entity.NotificationTypeCambioEstado,
			Mensaje:    fmt.Sprintf("Tu pedido %s cambió de estado: %s a %s", order.Numero, anterior, nuevoEstado),
			Referencia: order.Reference(),
			CreatedAt:  now,
		}
		return notifRepo.Create(notif)
	})
	if err != nil {
		return nil, err
	}

	uc.emitter.Enqueue(ctx, notif)
	uc.log.Info().Str("order_id", id).Str("estado", nuevoEstado).Msg("estado de pedido actualizado")
	return dto.ToOrderResponse(order), nil
}

// AssignCourier asigna un repartidor a un pedido Pendiente o EnPreparacion,
// lo pasa a Enviado y notifica tanto al repartidor como al cliente.
func (uc *UseCase) AssignCourier(ctx context.Context, id, repartidorID string) (*dto.OrderResponse, error) {
	repartidor, err := uc.userRepo.GetByID(repartidorID)
	if err != nil {
		return nil, err
	}
	if repartidor == nil {
		return nil, fmt.Errorf("%w: repartidor no encontrado", domain.ErrUserNotFound)
	}
	if repartidor.Role != entity.RoleRepartidor {
		return nil, fmt.Errorf("%w: el usuario %s no es repartidor", domain.ErrInvalidInput, repartidorID)
	}

	now := time.Now().UTC()
	var (
		order  *entity.Order
		notifs []*entity.Notification
	)
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.OrderItemRepository,
		_ repository.ProductRepository,
		_ repository.InventoryMovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanAssignCourier() {
			return &domain.InvalidTransitionError{From: order.Estado, To: entity.OrderStatusEnviado}
		}

		order.RepartidorID = &repartidor.ID
		order.FechaAsignacion = &now
		order.Estado = entity.OrderStatusEnviado
		order.Touch(now)
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		notifs = []*entity.Notification{
			{
				ID:         uuid.NewString(),
				UserID:     repartidor.ID,
				Tipo:       entity.NotificationTypePedidoAsignado,
				Mensaje:    fmt.Sprintf("Se te ha asignado el pedido %s para entrega en %s", order.Numero, order.DireccionEnvio),
				Referencia: order.Reference(),
				CreatedAt:  now,
			},
			{
				ID:         uuid.NewString(),
				UserID:     order.UserID,
				Tipo:       entity.NotificationTypePedidoEnCamino,
				Mensaje:    fmt.Sprintf("Tu pedido %s está en camino", order.Numero),
				Referencia: order.Reference(),
				CreatedAt:  now,
			},
		}
		for _, n := range notifs {
			if err := notifRepo.Create(n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range notifs {
		uc.emitter.Enqueue(ctx, n)
	}
	uc.log.Info().Str("order_id", id).Str("repartidor_id", repartidorID).Msg("repartidor asignado")
	return dto.ToOrderResponse(order), nil
}

// Cancel cancela un pedido no terminal: repone el stock de cada línea con
// su movimiento Entrada, marca el pedido Cancelado y notifica al cliente.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*dto.OrderResponse, error) {
	now := time.Now().UTC()
	var (
		order *entity.Order
		notif *entity.Notification
	)
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanCancel() {
			return &domain.InvalidTransitionError{From: order.Estado, To: entity.OrderStatusCancelado}
		}

		detalles, err := itemRepo.ListByOrder(order.ID)
		if err != nil {
			return err
		}
		if err := uc.restock(productRepo, movRepo, detalles, "Cancelación de Pedido #"+order.Numero, order.Reference(), now); err != nil {
			return err
		}

		order.Estado = entity.OrderStatusCancelado
		order.Detalles = detalles
		order.Touch(now)
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		notif = &entity.Notification{
			ID:         uuid.NewString(),
			UserID:     order.UserID,
			Tipo:       entity.NotificationTypePedidoCancelado,
			Mensaje:    fmt.Sprintf("Tu pedido %s ha sido cancelado", order.Numero),
			Referencia: order.Reference(),
			CreatedAt:  now,
		}
		return notifRepo.Create(notif)
	})
	if err != nil {
		return nil, err
	}

	uc.emitter.Enqueue(ctx, notif)
	uc.log.Info().Str("order_id", id).Msg("pedido cancelado")
	return dto.ToOrderResponse(order), nil
}

// Delete elimina un pedido Pendiente o Cancelado junto con sus líneas y las
// notificaciones que lo referencian. Si el pedido no estaba cancelado el
// stock se repone primero (un pedido cancelado ya lo repuso al cancelarse).
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		order, err := orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanDelete() {
			return fmt.Errorf("%w: solo se pueden eliminar pedidos Pendiente o Cancelado (actual: %s)", domain.ErrConflict, order.Estado)
		}

		detalles, err := itemRepo.ListByOrder(order.ID)
		if err != nil {
			return err
		}
		if order.Estado != entity.OrderStatusCancelado {
			if err := uc.restock(productRepo, movRepo, detalles, "Eliminación de Pedido #"+order.Numero, order.Reference(), now); err != nil {
				return err
			}
		}

		if err := itemRepo.DeleteByOrder(order.ID); err != nil {
			return err
		}
		if err := notifRepo.DeleteByReference(order.Reference()); err != nil {
			return err
		}
		return orderRepo.Delete(order.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_id", id).Msg("pedido eliminado")
	return nil
}

// AddItem agrega una línea a un pedido Pendiente: reserva stock, registra
// el movimiento Salida y recalcula el total.
func (uc *UseCase) AddItem(ctx context.Context, orderID string, in dto.AddOrderItemRequest) (*dto.OrderResponse, error) {
	now := time.Now().UTC()
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		_ repository.NotificationRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanAddOrRemoveItems() {
			return &domain.InvalidTransitionError{From: order.Estado}
		}

		product, err := uc.ledger.Reserve(productRepo, in.ProductID, in.Cantidad)
		if err != nil {
			return err
		}

		item := &entity.OrderItem{
			ID:             uuid.NewString(),
			OrderID:        order.ID,
			ProductID:      product.ID,
			NombreProducto: product.Nombre,
			Cantidad:       in.Cantidad,
			PrecioUnitario: product.Precio,
			Subtotal:       entity.NewOrderItemSubtotal(in.Cantidad, product.Precio),
			Audit:          entity.NewAudit(now),
		}
		if err := itemRepo.Create(item); err != nil {
			return err
		}

		if _, err := uc.recorder.Record(movRepo, inventory.RecordInput{
			ProductID:     product.ID,
			Tipo:          entity.MovementTypeSalida,
			Cantidad:      in.Cantidad,
			StockAnterior: product.Stock + in.Cantidad,
			StockNuevo:    product.Stock,
			Motivo:        "Pedido #" + order.Numero,
			Referencia:    order.Reference(),
			Fecha:         now,
		}); err != nil {
			return err
		}

		order.Subtotal = order.Subtotal.Add(item.Subtotal)
		order.Total = order.Total.Add(item.Subtotal)
		order.Touch(now)
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		order.Detalles, err = itemRepo.ListByOrder(order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("product_id", in.ProductID).Int("cantidad", in.Cantidad).Msg("línea agregada al pedido")
	return dto.ToOrderResponse(order), nil
}

// RemoveItem retira una línea de un pedido Pendiente: repone el stock con
// su movimiento Entrada y recalcula el total.
func (uc *UseCase) RemoveItem(ctx context.Context, itemID string) (*dto.OrderResponse, error) {
	now := time.Now().UTC()
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		_ repository.NotificationRepository,
	) error {
		item, err := itemRepo.GetByID(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		order, err = orderRepo.GetByID(item.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanAddOrRemoveItems() {
			return &domain.InvalidTransitionError{From: order.Estado}
		}

		product, err := uc.ledger.Release(productRepo, item.ProductID, item.Cantidad)
		if err != nil {
			return err
		}
		if _, err := uc.recorder.Record(movRepo, inventory.RecordInput{
			ProductID:     product.ID,
			Tipo:          entity.MovementTypeEntrada,
			Cantidad:      item.Cantidad,
			StockAnterior: product.Stock - item.Cantidad,
			StockNuevo:    product.Stock,
			Motivo:        "Retiro de producto del Pedido #" + order.Numero,
			Referencia:    order.Reference(),
			Fecha:         now,
		}); err != nil {
			return err
		}

		if err := itemRepo.Delete(item.ID); err != nil {
			return err
		}

		order.Subtotal = order.Subtotal.Sub(item.Subtotal)
		order.Total = order.Total.Sub(item.Subtotal)
		order.Touch(now)
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		order.Detalles, err = itemRepo.ListByOrder(order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", itemID).Msg("línea retirada del pedido")
	return dto.ToOrderResponse(order), nil
}

// restock repone el stock de cada línea y deja su movimiento Entrada,
// dentro de la transacción del llamador.
func (uc *UseCase) restock(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	detalles []*entity.OrderItem,
	motivo, referencia string,
	now time.Time,
) error {
	for _, d := range detalles {
		product, err := uc.ledger.Release(productRepo, d.ProductID, d.Cantidad)
		if err != nil {
			return err
		}
		if _, err := uc.recorder.Record(movRepo, inventory.RecordInput{
			ProductID:     product.ID,
			Tipo:          entity.MovementTypeEntrada,
			Cantidad:      d.Cantidad,
			StockAnterior: product.Stock - d.Cantidad,
			StockNuevo:    product.Stock,
			Motivo:        motivo,
			Referencia:    referencia,
			Fecha:         now,
		}); err != nil {
			return err
		}
	}
	return nil
}

// loadOrder consulta la cabecera y sus líneas por los repos de solo lectura.
func (uc *UseCase) loadOrder(id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	order.Detalles, err = uc.itemRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}
