package products

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/inventory"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

// UseCase catálogo de productos. El stock no se edita por aquí después del
// alta: cambia solo vía movimientos de inventario o el flujo de pedidos.
type UseCase struct {
	txRunner    inventory.TxRunner
	productRepo repository.ProductRepository
	itemRepo    repository.OrderItemRepository
	recorder    inventory.MovementRecorder
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de productos.
func NewUseCase(
	txRunner inventory.TxRunner,
	productRepo repository.ProductRepository,
	itemRepo repository.OrderItemRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, itemRepo: itemRepo, log: log}
}

// Create da de alta un producto. Si trae stock inicial se asienta el
// movimiento Entrada correspondiente en la misma transacción, para que el
// historial explique el stock desde el primer día.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Precio.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: el stock inicial no puede ser negativo", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.NewString(),
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		UnidadMedida: in.UnidadMedida,
		Precio:       in.Precio,
		Stock:        in.Stock,
		StockMinimo:  in.StockMinimo,
		Disponible:   true,
		Audit:        entity.NewAudit(now),
	}

	err := uc.txRunner.RunInventory(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		_ repository.NotificationRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if product.Stock > 0 {
			_, err := uc.recorder.Record(movRepo, inventory.RecordInput{
				ProductID:     product.ID,
				Tipo:          entity.MovementTypeEntrada,
				Cantidad:      product.Stock,
				StockAnterior: 0,
				StockNuevo:    product.Stock,
				Motivo:        "Stock inicial",
				Fecha:         now,
			})
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", product.ID).Str("nombre", product.Nombre).Msg("producto creado")
	return dto.ToProductResponse(product), nil
}

// GetByID consulta un producto.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(product), nil
}

// List productos paginados con total.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PagedResult[*dto.ProductResponse], error) {
	page.DefaultPage()
	ps, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	items := make([]*dto.ProductResponse, 0, len(ps))
	for _, p := range ps {
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.PagedResult[*dto.ProductResponse]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

// Update actualiza los datos del catálogo (nunca el stock).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Precio.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	product.Nombre = in.Nombre
	product.Descripcion = in.Descripcion
	product.UnidadMedida = in.UnidadMedida
	product.Precio = in.Precio
	product.StockMinimo = in.StockMinimo
	if in.Disponible != nil {
		product.Disponible = *in.Disponible
	}
	product.Touch(time.Now().UTC())

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Delete elimina un producto del catálogo. Un producto referenciado por
// líneas de pedido no se elimina: el pedido necesita la fila para reponer
// stock al cancelar o eliminar.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.itemRepo.ExistsByProduct(id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: el producto %s está referenciado por pedidos", domain.ErrConflict, product.Nombre)
	}
	if err := uc.productRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}
