package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/almacensaas/almacen-api/internal/application/dto"
	"github.com/almacensaas/almacen-api/internal/application/users"
	"github.com/almacensaas/almacen-api/internal/domain"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

type usersRepo struct {
	users map[string]*entity.User
}

func newUsersRepo() *usersRepo {
	return &usersRepo{users: make(map[string]*entity.User)}
}

func (r *usersRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *usersRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *usersRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *usersRepo) Update(u *entity.User) error {
	if stored, ok := r.users[u.ID]; ok {
		hash := stored.PasswordHash
		cp := *u
		cp.PasswordHash = hash // el perfil nunca toca el hash
		r.users[u.ID] = &cp
	}
	return nil
}

func (r *usersRepo) UpdatePassword(id, hash string) error {
	if u, ok := r.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *usersRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *usersRepo) ListByRole(role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *usersRepo) ListAdmins() ([]*entity.User, error) { return r.ListByRole(entity.RoleAdmin) }

func (r *usersRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func newUsersFixture() (*usersRepo, *users.UseCase) {
	repo := newUsersRepo()
	return repo, users.NewUseCase(repo, logger.Nop())
}

func seedUser(r *usersRepo, role, password string) *entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &entity.User{
		ID:           uuid.NewString(),
		Nombre:       "Ana",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         role,
		Audit:        entity.NewAudit(time.Now().UTC()),
	}
	r.users[u.ID] = u
	return u
}

func TestUpdate_ActualizaPerfilSinTocarHash(t *testing.T) {
	repo, uc := newUsersFixture()
	u := seedUser(repo, entity.RoleCliente, "secreta123")

	out, err := uc.Update(context.Background(), u.ID, dto.UpdateUserRequest{
		Nombre:    "Ana María",
		Telefono:  "555-0102",
		Direccion: "Av. Siempre Viva 742",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Nombre)
	assert.Equal(t, u.PasswordHash, repo.users[u.ID].PasswordHash)
	assert.Equal(t, u.Email, repo.users[u.ID].Email)
}

func TestUpdate_UsuarioInexistente(t *testing.T) {
	_, uc := newUsersFixture()
	_, err := uc.Update(context.Background(), "no-existe", dto.UpdateUserRequest{Nombre: "X"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestChangePassword_FlujoFeliz(t *testing.T) {
	repo, uc := newUsersFixture()
	u := seedUser(repo, entity.RoleCliente, "secreta123")

	err := uc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		PasswordActual: "secreta123",
		PasswordNueva:  "nuevaclave456",
	})
	require.NoError(t, err)

	stored := repo.users[u.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nuevaclave456")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestChangePassword_ActualIncorrecta(t *testing.T) {
	repo, uc := newUsersFixture()
	u := seedUser(repo, entity.RoleCliente, "secreta123")

	err := uc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		PasswordActual: "equivocada",
		PasswordNueva:  "nuevaclave456",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, u.PasswordHash, repo.users[u.ID].PasswordHash)
}

func TestChangePassword_NuevaIgualALaActual(t *testing.T) {
	repo, uc := newUsersFixture()
	u := seedUser(repo, entity.RoleCliente, "secreta123")

	err := uc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		PasswordActual: "secreta123",
		PasswordNueva:  "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListByRole(t *testing.T) {
	repo, uc := newUsersFixture()
	seedUser(repo, entity.RoleRepartidor, "x")
	admin := seedUser(repo, entity.RoleAdmin, "x")
	admin.Email = "admin@example.com"

	out, err := uc.ListByRole(context.Background(), entity.RoleRepartidor)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, entity.RoleRepartidor, out[0].Role)

	_, err = uc.ListByRole(context.Background(), "gerente")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByEmail_Normaliza(t *testing.T) {
	repo, uc := newUsersFixture()
	seedUser(repo, entity.RoleCliente, "x")

	out, err := uc.GetByEmail(context.Background(), "  ANA@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.Email)

	_, err = uc.GetByEmail(context.Background(), "nadie@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDelete_Usuario(t *testing.T) {
	repo, uc := newUsersFixture()
	u := seedUser(repo, entity.RoleCliente, "x")

	require.NoError(t, uc.Delete(context.Background(), u.ID))
	assert.Empty(t, repo.users)

	err := uc.Delete(context.Background(), u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
