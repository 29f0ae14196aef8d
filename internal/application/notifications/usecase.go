package notifications

import (
	"context"
	"time"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

// UseCase consultas y administración de la bandeja de notificaciones.
// La creación de notificaciones no pasa por aquí: cada flujo de negocio las
// escribe dentro de su propia transacción.
type UseCase struct {
	notifRepo repository.NotificationRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de notificaciones.
func NewUseCase(notifRepo repository.NotificationRepository, log *logger.Logger) *UseCase {
	return &UseCase{notifRepo: notifRepo, log: log}
}

// ListByUser bandeja de un usuario, de la más reciente a la más antigua.
func (uc *UseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) ([]*dto.NotificationResponse, error) {
	page.DefaultPage()
	ns, err := uc.notifRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.ToNotificationResponses(ns), nil
}

// ListByUserAndType bandeja filtrada por tipo.
func (uc *UseCase) ListByUserAndType(ctx context.Context, userID, tipo string) ([]*dto.NotificationResponse, error) {
	ns, err := uc.notifRepo.ListByUserAndType(userID, tipo)
	if err != nil {
		return nil, err
	}
	return dto.ToNotificationResponses(ns), nil
}

// CountUnread cantidad de notificaciones sin leer de un usuario.
func (uc *UseCase) CountUnread(ctx context.Context, userID string) (int, error) {
	return uc.notifRepo.CountUnread(userID)
}

// MarkRead marca una notificación como leída. Solo el destinatario puede
// marcar las suyas.
func (uc *UseCase) MarkRead(ctx context.Context, id, userID string) error {
	n, err := uc.notifRepo.GetByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.notifRepo.MarkRead(id, time.Now().UTC())
}

// MarkAllRead marca toda la bandeja de un usuario como leída.
func (uc *UseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notifRepo.MarkAllRead(userID, time.Now().UTC())
}

// Delete elimina una notificación del destinatario.
func (uc *UseCase) Delete(ctx context.Context, id, userID string) error {
	n, err := uc.notifRepo.GetByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.notifRepo.Delete(id)
}

// PurgeOld elimina notificaciones con más de retentionDays días. Pensado
// para correr como tarea periódica del worker.
func (uc *UseCase) PurgeOld(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, domain.ErrInvalidInput
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	deleted, err := uc.notifRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		uc.log.Info().Int("eliminadas", deleted).Time("corte", cutoff).Msg("notificaciones antiguas purgadas")
	}
	return deleted, nil
}
