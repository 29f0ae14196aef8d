package notifications

import (
	"context"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// Emitter frontera de envío de notificaciones. La fila ya fue escrita dentro
// de la transacción del flujo que la originó; Enqueue solo programa la
// entrega (email, push) y es fire-and-forget: un fallo aquí se registra en
// el log pero nunca revierte ni falla la operación de negocio.
type Emitter interface {
	Enqueue(ctx context.Context, n *entity.Notification)
}

// NopEmitter descarta todo. Útil en tests y cuando no hay broker configurado.
type NopEmitter struct{}

func (NopEmitter) Enqueue(ctx context.Context, n *entity.Notification) {}
