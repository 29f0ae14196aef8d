package repository

import "github.com/almacensaas/almacen-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	Update(order *entity.Order) error
	List(limit, offset int) ([]*entity.Order, error)
	ListByStatus(estado string) ([]*entity.Order, error)
	ListByUser(userID string) ([]*entity.Order, error)
	Count() (int, error)
	Delete(id string) error
}

// OrderItemRepository define el puerto de persistencia para OrderItem (DIP).
// ExistsByProduct sostiene la regla de que un producto referenciado por
// líneas de pedido no se elimina del catálogo.
type OrderItemRepository interface {
	Create(item *entity.OrderItem) error
	GetByID(id string) (*entity.OrderItem, error)
	ListByOrder(orderID string) ([]*entity.OrderItem, error)
	ExistsByProduct(productID string) (bool, error)
	Delete(id string) error
	DeleteByOrder(orderID string) error
}
