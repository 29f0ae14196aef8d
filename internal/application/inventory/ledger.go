package inventory

import (
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

// StockLedger único mutador de la cantidad autoritativa de stock de un
// producto. Toda reserva o liberación pasa por aquí, siempre dentro de la
// transacción del llamador: el repo recibido debe estar atado a esa tx para
// que GetForUpdate bloquee la fila hasta el commit.
type StockLedger struct{}

// Reserve descuenta cantidad unidades del producto. Falla con
// InsufficientStockError si el stock disponible no alcanza; el stock nunca
// queda negativo. Retorna el producto ya con el stock actualizado.
func (StockLedger) Reserve(productRepo repository.ProductRepository, productID string, cantidad int) (*entity.Product, error) {
	if cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Stock < cantidad {
		return nil, &domain.InsufficientStockError{
			ProductName: product.Nombre,
			Available:   product.Stock,
			Requested:   cantidad,
		}
	}
	product.Stock -= cantidad
	if err := productRepo.UpdateStock(product.ID, product.Stock); err != nil {
		return nil, err
	}
	return product, nil
}

// Release devuelve cantidad unidades al stock del producto (cancelaciones,
// eliminaciones, retiros de línea). Retorna el producto ya actualizado.
func (StockLedger) Release(productRepo repository.ProductRepository, productID string, cantidad int) (*entity.Product, error) {
	if cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Stock += cantidad
	if err := productRepo.UpdateStock(product.ID, product.Stock); err != nil {
		return nil, err
	}
	return product, nil
}
