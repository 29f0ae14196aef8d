package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/almacensaas/almacen-api/internal/application/notifications"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

// WorkerConfig dependencias del worker de background.
type WorkerConfig struct {
	RedisOpts     asynq.RedisClientOpt
	UserRepo      repository.UserRepository
	NotifUC       *notifications.UseCase
	RetentionDays int
	Log           *logger.Logger
}

// Worker envuelve el servidor asynq y el scheduler de tareas periódicas.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

// NewWorker construye el worker con los handlers de notificaciones y la
// limpieza periódica registrada en el scheduler (cada día a las 03:00 UTC).
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})

	h := &handlers{userRepo: cfg.UserRepo, notifUC: cfg.NotifUC, retentionDays: cfg.RetentionDays, log: cfg.Log}
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeNotifyDeliver, h.deliver)
	mux.HandleFunc(TaskTypeNotifyPurge, h.purge)

	scheduler := asynq.NewScheduler(cfg.RedisOpts, nil)
	if _, err := scheduler.Register("0 3 * * *", NewNotifyPurgeTask(), asynq.Queue(QueueDefault)); err != nil {
		return nil, err
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, log: cfg.Log}, nil
}

// Run procesa tareas hasta que el contexto se cancele.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.scheduler.Start(); err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.log.Info().Msg("deteniendo worker")
		w.scheduler.Shutdown()
		w.server.Shutdown()
		return nil
	case err := <-errCh:
		w.scheduler.Shutdown()
		return err
	}
}

type handlers struct {
	userRepo      repository.UserRepository
	notifUC       *notifications.UseCase
	retentionDays int
	log           *logger.Logger
}

// deliver entrega la notificación al canal externo. Hoy el canal es el log;
// el payload ya trae todo lo necesario para enchufar email o push.
func (h *handlers) deliver(ctx context.Context, t *asynq.Task) error {
	var payload NotifyDeliverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	user, err := h.userRepo.GetByID(payload.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		// El destinatario ya no existe; no tiene sentido reintentar.
		return asynq.SkipRetry
	}
	h.log.Info().
		Str("notification_id", payload.NotificationID).
		Str("tipo", payload.Tipo).
		Str("email", user.Email).
		Str("mensaje", payload.Mensaje).
		Msg("notificación entregada")
	return nil
}

func (h *handlers) purge(ctx context.Context, t *asynq.Task) error {
	_, err := h.notifUC.PurgeOld(ctx, h.retentionDays)
	return err
}
