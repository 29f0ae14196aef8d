package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/internal/domain/repository"
	"github.com/almacensaas/almacen-api/pkg/config"
	"github.com/almacensaas/almacen-api/pkg/jwt"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

// UseCase registro y autenticación de usuarios con JWT.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// Register da de alta un usuario con la contraseña hasheada con bcrypt.
// El email es único; si no se indica rol se asigna cliente.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	role := in.Role
	if role == "" {
		role = entity.RoleCliente
	}
	switch role {
	case entity.RoleAdmin, entity.RoleCliente, entity.RoleRepartidor:
	default:
		return nil, fmt.Errorf("%w: rol desconocido: %s", domain.ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.NewString(),
		Nombre:       in.Nombre,
		Apellido:     in.Apellido,
		Email:        email,
		Telefono:     in.Telefono,
		PasswordHash: string(hash),
		Role:         role,
		Direccion:    in.Direccion,
		Audit:        entity.NewAudit(now),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario registrado")
	return dto.ToUserResponse(user), nil
}

// Login valida credenciales y devuelve un JWT con el rol del usuario.
// Credenciales inválidas y usuario inexistente responden igual para no
// filtrar qué emails existen.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Msg("login exitoso")
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(user)}, nil
}

// GetProfile devuelve los datos del usuario autenticado.
func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}
