package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacensaas/almacen-api/internal/domain/entity"
	apihttp "github.com/almacensaas/almacen-api/internal/interfaces/http"
	"github.com/almacensaas/almacen-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// buildTestApp arma una aplicación Fiber mínima: AuthMiddleware parsea el
// JWT y carga los locals, RequireRole autoriza.
func buildTestApp(roles ...string) *fiber.App {
	app := fiber.New()
	grp := app.Group("/", apihttp.AuthMiddleware(testSecret))
	if len(roles) > 0 {
		grp.Use(apihttp.RequireRole(roles...))
	}
	grp.Get("/recurso", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apihttp.GetUserID(c),
			"role":    apihttp.GetRole(c),
		})
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, uuid.NewString(), role, "almacen-api", 15)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_RolPermitido(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleRepartidor)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleRepartidor))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_RolIncorrecto(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleCliente))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/recurso", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()

	for _, header := range []string{"Basic abc", "Bearer", "Bearer "} {
		req := httptest.NewRequest("GET", "/recurso", nil)
		req.Header.Set("Authorization", header)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestAuthMiddleware_TokenConOtraFirma(t *testing.T) {
	app := buildTestApp()

	token, err := jwt.Generate("otro-secreto", uuid.NewString(), entity.RoleAdmin, "almacen-api", 15)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()

	token, err := jwt.Generate(testSecret, uuid.NewString(), entity.RoleAdmin, "almacen-api", -5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/recurso", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
