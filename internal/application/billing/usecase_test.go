package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacensaas/almacen-api/internal/application/billing"
	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

type billStore struct {
	users    map[string]*entity.User
	orders   map[string]*entity.Order
	invoices map[string]*entity.Invoice
	notifs   []*entity.Notification
}

func newBillStore() *billStore {
	return &billStore{
		users:    make(map[string]*entity.User),
		orders:   make(map[string]*entity.Order),
		invoices: make(map[string]*entity.Invoice),
	}
}

type billUserRepo struct{ s *billStore }

func (r *billUserRepo) Create(u *entity.User) error { return nil }
func (r *billUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
func (r *billUserRepo) GetByEmail(email string) (*entity.User, error)  { return nil, nil }
func (r *billUserRepo) Update(u *entity.User) error                      { return nil }
func (r *billUserRepo) UpdatePassword(id, hash string) error             { return nil }
func (r *billUserRepo) List(limit, offset int) ([]*entity.User, error)   { return nil, nil }
func (r *billUserRepo) ListByRole(role string) ([]*entity.User, error)   { return nil, nil }
func (r *billUserRepo) ListAdmins() ([]*entity.User, error)            { return nil, nil }
func (r *billUserRepo) Delete(id string) error                         { return nil }

type billOrderRepo struct{ s *billStore }

func (r *billOrderRepo) Create(o *entity.Order) error { return nil }
func (r *billOrderRepo) GetByID(id string) (*entity.Order, error) {
	if o, ok := r.s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}
func (r *billOrderRepo) Update(o *entity.Order) error                    { return nil }
func (r *billOrderRepo) List(limit, offset int) ([]*entity.Order, error) { return nil, nil }
func (r *billOrderRepo) ListByStatus(estado string) ([]*entity.Order, error) {
	return nil, nil
}
func (r *billOrderRepo) ListByUser(userID string) ([]*entity.Order, error) { return nil, nil }
func (r *billOrderRepo) Count() (int, error)                               { return 0, nil }
func (r *billOrderRepo) Delete(id string) error                            { return nil }

type billInvoiceRepo struct{ s *billStore }

func (r *billInvoiceRepo) Create(f *entity.Invoice) error {
	cp := *f
	r.s.invoices[f.ID] = &cp
	return nil
}
func (r *billInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if f, ok := r.s.invoices[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}
func (r *billInvoiceRepo) GetByOrder(orderID string) (*entity.Invoice, error) {
	for _, f := range r.s.invoices {
		if f.OrderID == orderID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *billInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, f := range r.s.invoices {
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}
func (r *billInvoiceRepo) Count() (int, error) { return len(r.s.invoices), nil }

type billNotifRepo struct{ s *billStore }

func (r *billNotifRepo) Create(n *entity.Notification) error {
	cp := *n
	r.s.notifs = append(r.s.notifs, &cp)
	return nil
}
func (r *billNotifRepo) GetByID(id string) (*entity.Notification, error) { return nil, nil }
func (r *billNotifRepo) ListByUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *billNotifRepo) ListByUserAndType(userID, tipo string) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *billNotifRepo) CountUnread(userID string) (int, error)        { return 0, nil }
func (r *billNotifRepo) MarkRead(id string, at time.Time) error        { return nil }
func (r *billNotifRepo) MarkAllRead(userID string, at time.Time) error { return nil }
func (r *billNotifRepo) Delete(id string) error                        { return nil }
func (r *billNotifRepo) DeleteByReference(referencia string) error     { return nil }
func (r *billNotifRepo) DeleteOlderThan(t time.Time) (int, error)      { return 0, nil }

type billTxRunner struct{ s *billStore }

func (r *billTxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return fn(&billInvoiceRepo{r.s}, &billNotifRepo{r.s})
}

type billEmitter struct{ sent []*entity.Notification }

func (e *billEmitter) Enqueue(ctx context.Context, n *entity.Notification) {
	e.sent = append(e.sent, n)
}

func newBillFixture() (*billStore, *billing.UseCase, *billEmitter) {
	store := newBillStore()
	emitter := &billEmitter{}
	uc := billing.NewUseCase(
		&billTxRunner{store},
		&billOrderRepo{store},
		&billUserRepo{store},
		&billInvoiceRepo{store},
		emitter,
		logger.Nop(),
	)
	return store, uc, emitter
}

func seedOrder(s *billStore, estado, total string) *entity.Order {
	user := &entity.User{ID: uuid.NewString(), Email: "ana@example.com"}
	s.users[user.ID] = user
	o := &entity.Order{
		ID:     uuid.NewString(),
		Numero: "PED-1",
		UserID: user.ID,
		Estado: estado,
		Total:  decimal.RequireFromString(total),
	}
	s.orders[o.ID] = o
	return o
}

func TestCrearFactura_AplicaIVA(t *testing.T) {
	store, uc, emitter := newBillFixture()
	order := seedOrder(store, entity.OrderStatusEntregado, "191.50")

	out, err := uc.CrearFactura(context.Background(), dto.CreateInvoiceRequest{OrderID: order.ID})
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("191.50")))
	assert.True(t, out.IVA.Equal(decimal.RequireFromString("30.64")), out.IVA.String())
	assert.True(t, out.Total.Equal(decimal.RequireFromString("222.14")), out.Total.String())
	assert.Equal(t, "ana@example.com", out.Email)
	assert.NotEmpty(t, out.FolioFiscal)

	require.Len(t, store.notifs, 1)
	assert.Equal(t, entity.NotificationTypeFacturaCreada, store.notifs[0].Tipo)
	assert.Len(t, emitter.sent, 1)
}

func TestCrearFactura_PedidoCancelado(t *testing.T) {
	store, uc, _ := newBillFixture()
	order := seedOrder(store, entity.OrderStatusCancelado, "100.00")

	_, err := uc.CrearFactura(context.Background(), dto.CreateInvoiceRequest{OrderID: order.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, store.invoices)
}

func TestCrearFactura_Duplicada(t *testing.T) {
	store, uc, _ := newBillFixture()
	order := seedOrder(store, entity.OrderStatusEntregado, "100.00")

	_, err := uc.CrearFactura(context.Background(), dto.CreateInvoiceRequest{OrderID: order.ID})
	require.NoError(t, err)

	_, err = uc.CrearFactura(context.Background(), dto.CreateInvoiceRequest{OrderID: order.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, store.invoices, 1)
}

func TestCrearFactura_PedidoInexistente(t *testing.T) {
	_, uc, _ := newBillFixture()
	_, err := uc.CrearFactura(context.Background(), dto.CreateInvoiceRequest{OrderID: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
