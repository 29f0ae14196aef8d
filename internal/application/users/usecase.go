package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

// UseCase administración de usuarios: consultas, actualización de perfil,
// cambio de contraseña y baja. El alta pasa por auth.Register.
type UseCase struct {
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de usuarios.
func NewUseCase(userRepo repository.UserRepository, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, log: log}
}

// List usuarios paginados.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.UserResponse, error) {
	page.DefaultPage()
	us, err := uc.userRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toUserResponses(us), nil
}

// ListByRole usuarios de un rol.
func (uc *UseCase) ListByRole(ctx context.Context, role string) ([]*dto.UserResponse, error) {
	switch role {
	case entity.RoleAdmin, entity.RoleCliente, entity.RoleRepartidor:
	default:
		return nil, fmt.Errorf("%w: rol desconocido: %s", domain.ErrInvalidInput, role)
	}
	us, err := uc.userRepo.ListByRole(role)
	if err != nil {
		return nil, err
	}
	return toUserResponses(us), nil
}

// GetByID consulta un usuario.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// GetByEmail consulta un usuario por email.
func (uc *UseCase) GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// Update actualiza los datos de perfil. Email, rol y contraseña no se
// tocan por aquí.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	user.Nombre = in.Nombre
	user.Apellido = in.Apellido
	user.Telefono = in.Telefono
	user.Direccion = in.Direccion
	if in.Activo != nil {
		user.Active = *in.Activo
	}
	user.Touch(time.Now().UTC())

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// ChangePassword verifica la contraseña actual y guarda el hash de la nueva.
func (uc *UseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.PasswordActual)); err != nil {
		return domain.ErrUnauthorized
	}
	if in.PasswordNueva == in.PasswordActual {
		return fmt.Errorf("%w: la nueva contraseña debe ser distinta a la actual", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.PasswordNueva), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashear password: %w", err)
	}
	if err := uc.userRepo.UpdatePassword(userID, string(hash)); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Msg("contraseña actualizada")
	return nil
}

// Delete da de baja un usuario.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.userRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Msg("usuario eliminado")
	return nil
}

func toUserResponses(us []*entity.User) []*dto.UserResponse {
	out := make([]*dto.UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, dto.ToUserResponse(u))
	}
	return out
}
