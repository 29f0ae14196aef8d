package repository

import "github.com/almacensaas/almacen-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// UpdatePassword es aparte de Update para que el hash nunca viaje por la
// actualización general de perfil.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(id, passwordHash string) error
	List(limit, offset int) ([]*entity.User, error)
	ListByRole(role string) ([]*entity.User, error)
	ListAdmins() ([]*entity.User, error)
	Delete(id string) error
}
