package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault nombre de la cola por defecto.
	QueueDefault = "default"
	// TaskTypeNotifyDeliver entrega de una notificación ya persistida.
	TaskTypeNotifyDeliver = "notification:deliver"
	// TaskTypeNotifyPurge limpieza periódica de notificaciones antiguas.
	TaskTypeNotifyPurge = "notification:purge"
)

// NotifyDeliverPayload datos mínimos para entregar una notificación. La fila
// ya está en la BD; el payload evita una lectura extra en el caso común.
type NotifyDeliverPayload struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Tipo           string `json:"tipo"`
	Mensaje        string `json:"mensaje"`
}

// NewNotifyDeliverTask construye la tarea de entrega.
func NewNotifyDeliverTask(payload NotifyDeliverPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeNotifyDeliver, data), nil
}

// NewNotifyPurgeTask construye la tarea de limpieza (para el scheduler).
func NewNotifyPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskTypeNotifyPurge, nil)
}
