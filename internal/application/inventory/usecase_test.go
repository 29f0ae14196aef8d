package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/inventory"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type invStore struct {
	products  map[string]*entity.Product
	admins    []*entity.User
	movements []*entity.InventoryMovement
	notifs    []*entity.Notification
}

func newInvStore() *invStore {
	return &invStore{products: make(map[string]*entity.Product)}
}

func (s *invStore) clone() *invStore {
	c := newInvStore()
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	c.admins = append(c.admins, s.admins...)
	for _, m := range s.movements {
		cp := *m
		c.movements = append(c.movements, &cp)
	}
	for _, n := range s.notifs {
		cp := *n
		c.notifs = append(c.notifs, &cp)
	}
	return c
}

type invProductRepo struct{ s *invStore }

func (r *invProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}
func (r *invProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *invProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *invProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}
func (r *invProductRepo) UpdateStock(productID string, stock int) error {
	if p, ok := r.s.products[productID]; ok {
		p.Stock = stock
	}
	return nil
}
func (r *invProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *invProductRepo) Count() (int, error)                               { return len(r.s.products), nil }
func (r *invProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type invMovRepo struct{ s *invStore }

func (r *invMovRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r *invMovRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *invMovRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *invMovRepo) ListByType(tipo string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.Tipo == tipo {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *invMovRepo) ListBetween(desde, hasta time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if !m.Fecha.Before(desde) && !m.Fecha.After(hasta) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type invNotifRepo struct{ s *invStore }

func (r *invNotifRepo) Create(n *entity.Notification) error {
	cp := *n
	r.s.notifs = append(r.s.notifs, &cp)
	return nil
}
func (r *invNotifRepo) GetByID(id string) (*entity.Notification, error) { return nil, nil }
func (r *invNotifRepo) ListByUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *invNotifRepo) ListByUserAndType(userID, tipo string) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *invNotifRepo) CountUnread(userID string) (int, error)        { return 0, nil }
func (r *invNotifRepo) MarkRead(id string, at time.Time) error        { return nil }
func (r *invNotifRepo) MarkAllRead(userID string, at time.Time) error { return nil }
func (r *invNotifRepo) Delete(id string) error                        { return nil }
func (r *invNotifRepo) DeleteByReference(referencia string) error     { return nil }
func (r *invNotifRepo) DeleteOlderThan(t time.Time) (int, error)      { return 0, nil }

type invUserRepo struct{ s *invStore }

func (r *invUserRepo) Create(u *entity.User) error                  { return nil }
func (r *invUserRepo) GetByID(id string) (*entity.User, error)      { return nil, nil }
func (r *invUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (r *invUserRepo) Update(u *entity.User) error                  { return nil }
func (r *invUserRepo) UpdatePassword(id, hash string) error           { return nil }
func (r *invUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }
func (r *invUserRepo) ListByRole(role string) ([]*entity.User, error) { return nil, nil }
func (r *invUserRepo) ListAdmins() ([]*entity.User, error)          { return r.s.admins, nil }
func (r *invUserRepo) Delete(id string) error                       { return nil }

type invTxRunner struct{ s *invStore }

func (r *invTxRunner) RunInventory(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	snap := r.s.clone()
	err := fn(&invProductRepo{r.s}, &invMovRepo{r.s}, &invNotifRepo{r.s})
	if err != nil {
		*r.s = *snap
	}
	return err
}

type invEmitter struct{ sent []*entity.Notification }

func (e *invEmitter) Enqueue(ctx context.Context, n *entity.Notification) {
	e.sent = append(e.sent, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const umbralGlobal = 10

func newInvFixture() (*invStore, *inventory.UseCase, *invEmitter) {
	store := newInvStore()
	emitter := &invEmitter{}
	uc := inventory.NewUseCase(
		&invTxRunner{store},
		&invProductRepo{store},
		&invMovRepo{store},
		&invUserRepo{store},
		emitter,
		umbralGlobal,
		logger.Nop(),
	)
	return store, uc, emitter
}

func addInvProduct(s *invStore, nombre string, stock, stockMinimo int) *entity.Product {
	p := &entity.Product{
		ID:          uuid.NewString(),
		Nombre:      nombre,
		Precio:      decimal.RequireFromString("10.00"),
		Stock:       stock,
		StockMinimo: stockMinimo,
		Disponible:  true,
		Audit:       entity.NewAudit(time.Now().UTC()),
	}
	s.products[p.ID] = p
	return p
}

func addAdmin(s *invStore) *entity.User {
	u := &entity.User{ID: uuid.NewString(), Nombre: "Root", Role: entity.RoleAdmin}
	s.admins = append(s.admins, u)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	store, uc, _ := newInvFixture()
	p := addInvProduct(store, "Arroz 1kg", 20, 5)

	out, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID,
		Tipo:      entity.MovementTypeEntrada,
		Cantidad:  30,
		Motivo:    "Compra a proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, out.StockAnterior)
	assert.Equal(t, 50, out.StockNuevo)
	assert.Equal(t, 50, store.products[p.ID].Stock)
}

func TestRegisterMovement_SalidaRestaStock(t *testing.T) {
	store, uc, _ := newInvFixture()
	p := addInvProduct(store, "Arroz 1kg", 20, 0)

	out, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID,
		Tipo:      entity.MovementTypeSalida,
		Cantidad:  8,
		Motivo:    "Merma",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, out.StockAnterior)
	assert.Equal(t, 12, out.StockNuevo)
	assert.Equal(t, 12, store.products[p.ID].Stock)
}

func TestRegisterMovement_DevolucionSuma_AjusteResta(t *testing.T) {
	store, uc, _ := newInvFixture()
	p := addInvProduct(store, "Arroz 1kg", 20, 0)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Tipo: entity.MovementTypeDevolucion, Cantidad: 5, Motivo: "Devolución de cliente",
	})
	require.NoError(t, err)
	assert.Equal(t, 25, store.products[p.ID].Stock)

	_, err = uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Tipo: entity.MovementTypeAjuste, Cantidad: 3, Motivo: "Conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 22, store.products[p.ID].Stock)
	assert.Len(t, store.movements, 2)
}

func TestRegisterMovement_StockNegativoRechazado(t *testing.T) {
	store, uc, _ := newInvFixture()
	p := addInvProduct(store, "Arroz 1kg", 5, 0)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Tipo: entity.MovementTypeSalida, Cantidad: 6, Motivo: "Merma",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// Nada queda asentado
	assert.Equal(t, 5, store.products[p.ID].Stock)
	assert.Empty(t, store.movements)
}

func TestRegisterMovement_CantidadInvalida(t *testing.T) {
	store, uc, _ := newInvFixture()
	p := addInvProduct(store, "Arroz 1kg", 5, 0)

	for _, cantidad := range []int{0, -3} {
		_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
			ProductID: p.ID, Tipo: entity.MovementTypeEntrada, Cantidad: cantidad, Motivo: "x",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, store.movements)
}

func TestRegisterMovement_TipoDesconocido(t *testing.T) {
	store, uc, _ := newInvFixture()
	p := addInvProduct(store, "Arroz 1kg", 5, 0)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Tipo: "Transferencia", Cantidad: 1, Motivo: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	_, uc, _ := newInvFixture()
	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: uuid.NewString(), Tipo: entity.MovementTypeEntrada, Cantidad: 1, Motivo: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alerta de bajo stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_BajoStockNotificaAdmins(t *testing.T) {
	store, uc, emitter := newInvFixture()
	p := addInvProduct(store, "Arroz 1kg", 12, 5)
	admin1 := addAdmin(store)
	admin2 := addAdmin(store)

	// 12 - 8 = 4, queda bajo el umbral del producto (5)
	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Tipo: entity.MovementTypeSalida, Cantidad: 8, Motivo: "Merma",
	})
	require.NoError(t, err)

	require.Len(t, store.notifs, 2)
	destinatarios := map[string]bool{}
	for _, n := range store.notifs {
		assert.Equal(t, entity.NotificationTypeBajoInventario, n.Tipo)
		assert.Contains(t, n.Mensaje, "Arroz 1kg")
		destinatarios[n.UserID] = true
	}
	assert.True(t, destinatarios[admin1.ID])
	assert.True(t, destinatarios[admin2.ID])
	assert.Len(t, emitter.sent, 2)
}

func TestRegisterMovement_UmbralGlobalCuandoProductoNoDefine(t *testing.T) {
	store, uc, _ := newInvFixture()
	// StockMinimo 0: aplica el umbral global (10)
	p := addInvProduct(store, "Frijol 1kg", 15, 0)
	addAdmin(store)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Tipo: entity.MovementTypeSalida, Cantidad: 6, Motivo: "Merma",
	})
	require.NoError(t, err)
	// 15 - 6 = 9 <= 10
	assert.Len(t, store.notifs, 1)
}

func TestRegisterMovement_SinAlertaConStockSano(t *testing.T) {
	store, uc, emitter := newInvFixture()
	p := addInvProduct(store, "Arroz 1kg", 100, 5)
	addAdmin(store)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Tipo: entity.MovementTypeSalida, Cantidad: 10, Motivo: "Merma",
	})
	require.NoError(t, err)
	assert.Empty(t, store.notifs)
	assert.Empty(t, emitter.sent)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestListByProduct_ProductoInexistente(t *testing.T) {
	_, uc, _ := newInvFixture()
	_, err := uc.ListByProduct(context.Background(), uuid.NewString(), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByType_TipoDesconocido(t *testing.T) {
	_, uc, _ := newInvFixture()
	_, err := uc.ListByType(context.Background(), "Teletransporte", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListBetween_RangoInvalido(t *testing.T) {
	_, uc, _ := newInvFixture()
	ahora := time.Now().UTC()
	_, err := uc.ListBetween(context.Background(), ahora, ahora.Add(-time.Hour), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCurrentStock(t *testing.T) {
	store, uc, _ := newInvFixture()
	p := addInvProduct(store, "Arroz 1kg", 42, 0)

	stock, err := uc.CurrentStock(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, stock)
}
