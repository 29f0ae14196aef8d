package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, user_id, tipo, mensaje, leida, fecha_lectura, referencia, created_at`

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL (usable con pool o tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create inserta una notificación.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, tipo, mensaje, leida, fecha_lectura, referencia, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.UserID, n.Tipo, n.Mensaje, n.Leida, n.FechaLectura, n.Referencia, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// GetByID obtiene una notificación por ID.
func (r *NotificationRepo) GetByID(id string) (*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	var n entity.Notification
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&n.ID, &n.UserID, &n.Tipo, &n.Mensaje, &n.Leida, &n.FechaLectura, &n.Referencia, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return &n, nil
}

// ListByUser bandeja de un usuario, de la más reciente a la más antigua.
func (r *NotificationRepo) ListByUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	return scanNotifications(rows)
}

// ListByUserAndType bandeja filtrada por tipo.
func (r *NotificationRepo) ListByUserAndType(userID, tipo string) ([]*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1 AND tipo = $2 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, userID, tipo)
	if err != nil {
		return nil, fmt.Errorf("list notifications by type: %w", err)
	}
	defer rows.Close()
	return scanNotifications(rows)
}

// CountUnread cantidad de notificaciones sin leer de un usuario.
func (r *NotificationRepo) CountUnread(userID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND leida = false`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET leida = true, fecha_lectura = $2 WHERE id = $1`, id, at,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marca todas las notificaciones de un usuario como leídas.
func (r *NotificationRepo) MarkAllRead(userID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET leida = true, fecha_lectura = $2 WHERE user_id = $1 AND leida = false`, userID, at,
	)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// Delete elimina una notificación por ID.
func (r *NotificationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

// DeleteByReference elimina las notificaciones que referencian a una entidad
// (limpieza en cascada al eliminar un pedido).
func (r *NotificationRepo) DeleteByReference(referencia string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM notifications WHERE referencia = $1`, referencia)
	if err != nil {
		return fmt.Errorf("delete notifications by reference: %w", err)
	}
	return nil
}

// DeleteOlderThan elimina notificaciones anteriores al corte y devuelve cuántas.
func (r *NotificationRepo) DeleteOlderThan(t time.Time) (int, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM notifications WHERE created_at < $1`, t)
	if err != nil {
		return 0, fmt.Errorf("delete old notifications: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func scanNotifications(rows pgx.Rows) ([]*entity.Notification, error) {
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Tipo, &n.Mensaje, &n.Leida, &n.FechaLectura, &n.Referencia, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
