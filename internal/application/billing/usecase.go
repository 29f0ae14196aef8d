package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/notifications"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

// UseCase emite facturas sobre pedidos existentes. El subtotal de la
// factura es el total del pedido; el IVA se aplica al emitir, no al crear
// el pedido.
type UseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	invoiceRepo repository.InvoiceRepository
	emitter     notifications.Emitter
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de facturación.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	invoiceRepo repository.InvoiceRepository,
	emitter notifications.Emitter,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
		emitter:     emitter,
		log:         log,
	}
}

// CrearFactura emite la factura de un pedido. Un pedido cancelado no se
// factura y un pedido solo admite una factura.
func (uc *UseCase) CrearFactura(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	order, err := uc.orderRepo.GetByID(in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Estado == entity.OrderStatusCancelado {
		return nil, fmt.Errorf("%w: no se puede facturar un pedido cancelado", domain.ErrConflict)
	}
	if existing, err := uc.invoiceRepo.GetByOrder(order.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: el pedido %s ya tiene factura", domain.ErrDuplicate, order.Numero)
	}

	user, err := uc.userRepo.GetByID(order.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now().UTC()
	iva := entity.CalcularIVA(order.Total)
	invoice := &entity.Invoice{
		ID:           uuid.NewString(),
		FolioFiscal:  strings.ToUpper(uuid.NewString()),
		OrderID:      order.ID,
		FechaEmision: now,
		Email:        user.Email,
		Subtotal:     order.Total,
		IVA:          iva,
		Total:        order.Total.Add(iva),
		Audit:        entity.NewAudit(now),
	}

	var notif *entity.Notification
	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		notifRepo repository.NotificationRepository,
	) error {
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		notif = &entity.Notification{
			ID:         uuid.NewString(),
			UserID:     order.UserID,
			Tipo:       entity.NotificationTypeFacturaCreada,
			Mensaje:    fmt.Sprintf("Se ha generado la factura %s de tu pedido %s", invoice.FolioFiscal, order.Numero),
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
		Str("invoice_id", invoice.ID).
		Str("order_id", order.ID).
		Str("total", invoice.Total.StringFixed(2)).
		Msg("factura emitida")
	return dto.ToInvoiceResponse(invoice), nil
}

// GetByID consulta una factura.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToInvoiceResponse(invoice), nil
}

// GetByOrder consulta la factura de un pedido.
func (uc *UseCase) GetByOrder(ctx context.Context, orderID string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToInvoiceResponse(invoice), nil
}

// List facturas paginadas con total.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PagedResult[*dto.InvoiceResponse], error) {
	page.DefaultPage()
	fs, err := uc.invoiceRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.invoiceRepo.Count()
	if err != nil {
		return nil, err
	}
	items := make([]*dto.InvoiceResponse, 0, len(fs))
	for _, f := range fs {
		items = append(items, dto.ToInvoiceResponse(f))
	}
	return &dto.PagedResult[*dto.InvoiceResponse]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}
