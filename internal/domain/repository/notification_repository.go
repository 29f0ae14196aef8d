package repository

import (
	"time"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification (DIP).
type NotificationRepository interface {
	Create(n *entity.Notification) error
	GetByID(id string) (*entity.Notification, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Notification, error)
	ListByUserAndType(userID, tipo string) ([]*entity.Notification, error)
	CountUnread(userID string) (int, error)
	MarkRead(id string, at time.Time) error
	MarkAllRead(userID string, at time.Time) error
	Delete(id string) error
	DeleteByReference(referencia string) error
	DeleteOlderThan(t time.Time) (int, error)
}
