package dto

import (
	"time"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Nombre    string `json:"nombre" validate:"required"`
	Apellido  string `json:"apellido,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Telefono  string `json:"telefono,omitempty"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest body para PUT /api/usuarios/:id.
// El email y el rol no se cambian por aquí; el hash de contraseña tiene su
// propia operación.
type UpdateUserRequest struct {
	Nombre    string `json:"nombre" validate:"required"`
	Apellido  string `json:"apellido,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Activo    *bool  `json:"activo,omitempty"`
}

// ChangePasswordRequest body para PATCH /api/usuarios/password.
type ChangePasswordRequest struct {
	PasswordActual string `json:"password_actual" validate:"required"`
	PasswordNueva  string `json:"password_nueva" validate:"required,min=8"`
}

// UserResponse vista de un usuario (sin hash de password).
type UserResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido,omitempty"`
	Email     string    `json:"email"`
	Telefono  string    `json:"telefono,omitempty"`
	Role      string    `json:"role"`
	Direccion string    `json:"direccion,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse mapea la entidad al DTO de respuesta.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Apellido:  u.Apellido,
		Email:     u.Email,
		Telefono:  u.Telefono,
		Role:      u.Role,
		Direccion: u.Direccion,
		CreatedAt: u.CreatedAt,
	}
}
