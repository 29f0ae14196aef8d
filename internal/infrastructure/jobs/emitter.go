package jobs

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/almacensaas/almacen-api/internal/application/notifications"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

var _ notifications.Emitter = (*AsynqEmitter)(nil)

// AsynqEmitter encola la entrega de notificaciones en asynq después del
// commit. Un fallo de encolado se registra y se descarta: la fila ya quedó
// persistida y la bandeja del usuario la muestra igual.
type AsynqEmitter struct {
	client *asynq.Client
	log    *logger.Logger
}

// NewAsynqEmitter construye el emitter con un cliente asynq.
func NewAsynqEmitter(client *asynq.Client, log *logger.Logger) *AsynqEmitter {
	return &AsynqEmitter{client: client, log: log}
}

// Enqueue programa la entrega de la notificación. Fire-and-forget.
func (e *AsynqEmitter) Enqueue(ctx context.Context, n *entity.Notification) {
	if n == nil {
		return
	}
	task, err := NewNotifyDeliverTask(NotifyDeliverPayload{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Tipo:           n.Tipo,
		Mensaje:        n.Mensaje,
	})
	if err != nil {
		e.log.Error().Err(err).Str("notification_id", n.ID).Msg("no se pudo serializar la tarea de entrega")
		return
	}
	if _, err := e.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(5)); err != nil {
		e.log.Error().Err(err).Str("notification_id", n.ID).Msg("no se pudo encolar la entrega de la notificación")
	}
}
