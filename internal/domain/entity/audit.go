package entity

import "time"

// Audit campos de auditoría comunes, embebidos por composición en cada entidad.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
	Active    bool
}

// NewAudit inicializa la auditoría de una entidad recién creada.
func NewAudit(now time.Time) Audit {
	return Audit{CreatedAt: now, Active: true}
}

// Touch marca la entidad como modificada.
func (a *Audit) Touch(now time.Time) {
	a.UpdatedAt = &now
}
