package products_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/products"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

type prodStore struct {
	products  map[string]*entity.Product
	items     []*entity.OrderItem
	movements []*entity.InventoryMovement
}

type prodRepo struct{ s *prodStore }

func (r *prodRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *prodRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *prodRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *prodRepo) Update(p *entity.Product) error {
	if stored, ok := r.s.products[p.ID]; ok {
		stock := stored.Stock
		cp := *p
		cp.Stock = stock // el catálogo nunca toca el stock
		r.s.products[p.ID] = &cp
	}
	return nil
}

func (r *prodRepo) UpdateStock(productID string, stock int) error {
	if p, ok := r.s.products[productID]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *prodRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *prodRepo) Count() (int, error) { return len(r.s.products), nil }

func (r *prodRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type prodMovRepo struct{ s *prodStore }

func (r *prodMovRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *prodMovRepo) GetByID(id string) (*entity.InventoryMovement, error) { return nil, nil }
func (r *prodMovRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *prodMovRepo) ListByType(tipo string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *prodMovRepo) ListBetween(desde, hasta time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

type prodItemRepo struct{ s *prodStore }

func (r *prodItemRepo) Create(item *entity.OrderItem) error {
	cp := *item
	r.s.items = append(r.s.items, &cp)
	return nil
}

func (r *prodItemRepo) GetByID(id string) (*entity.OrderItem, error) { return nil, nil }
func (r *prodItemRepo) ListByOrder(orderID string) ([]*entity.OrderItem, error) {
	return nil, nil
}

func (r *prodItemRepo) ExistsByProduct(productID string) (bool, error) {
	for _, it := range r.s.items {
		if it.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *prodItemRepo) Delete(id string) error             { return nil }
func (r *prodItemRepo) DeleteByOrder(orderID string) error { return nil }

type prodTxRunner struct{ s *prodStore }

func (r *prodTxRunner) RunInventory(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return fn(&prodRepo{r.s}, &prodMovRepo{r.s}, nil)
}

func newProdFixture() (*prodStore, *products.UseCase) {
	store := &prodStore{products: make(map[string]*entity.Product)}
	uc := products.NewUseCase(&prodTxRunner{store}, &prodRepo{store}, &prodItemRepo{store}, logger.Nop())
	return store, uc
}

func TestCreate_ConStockInicialAsientaEntrada(t *testing.T) {
	store, uc := newProdFixture()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Nombre: "Café de grano",
		Precio: decimal.RequireFromString("185.00"),
		Stock:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Stock)
	assert.True(t, out.Disponible)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementTypeEntrada, mov.Tipo)
	assert.Equal(t, 20, mov.Cantidad)
	assert.Equal(t, 0, mov.StockAnterior)
	assert.Equal(t, 20, mov.StockNuevo)
	assert.Equal(t, "Stock inicial", mov.Motivo)
}

func TestCreate_SinStockNoAsientaMovimiento(t *testing.T) {
	store, uc := newProdFixture()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Nombre: "Té verde",
		Precio: decimal.RequireFromString("90.00"),
	})
	require.NoError(t, err)
	assert.Empty(t, store.movements)
}

func TestCreate_ValoresNegativos(t *testing.T) {
	_, uc := newProdFixture()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Nombre: "Café",
		Precio: decimal.RequireFromString("-1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		Nombre: "Café",
		Precio: decimal.RequireFromString("10.00"),
		Stock:  -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_NuncaTocaElStock(t *testing.T) {
	store, uc := newProdFixture()

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Nombre: "Café de grano",
		Precio: decimal.RequireFromString("185.00"),
		Stock:  20,
	})
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Nombre: "Café de grano premium",
		Precio: decimal.RequireFromString("210.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Café de grano premium", out.Nombre)
	assert.Equal(t, 20, store.products[created.ID].Stock)
}

func TestUpdate_Disponibilidad(t *testing.T) {
	_, uc := newProdFixture()

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Nombre: "Café",
		Precio: decimal.RequireFromString("185.00"),
	})
	require.NoError(t, err)

	disponible := false
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Nombre:     "Café",
		Precio:     decimal.RequireFromString("185.00"),
		Disponible: &disponible,
	})
	require.NoError(t, err)
	assert.False(t, out.Disponible)
}

func TestDelete_Inexistente(t *testing.T) {
	_, uc := newProdFixture()
	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ProductoReferenciadoPorPedidos(t *testing.T) {
	store, uc := newProdFixture()

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Nombre: "Café de grano",
		Precio: decimal.RequireFromString("185.00"),
		Stock:  20,
	})
	require.NoError(t, err)

	store.items = append(store.items, &entity.OrderItem{
		ID:        "linea-1",
		OrderID:   "pedido-1",
		ProductID: created.ID,
		Cantidad:  2,
	})

	// El pedido necesita la fila del producto para reponer stock al
	// cancelarse; borrarla lo dejaría irrecuperable.
	err = uc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, store.products, created.ID)

	// Sin referencias, la eliminación procede.
	store.items = nil
	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.NotContains(t, store.products, created.ID)
}
