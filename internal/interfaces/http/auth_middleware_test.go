package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/pkg/jwt"
)

const testSecret = "test-secret-for-middleware"

func newProtectedApp(t *testing.T, roles ...string) *fiber.App {
	t.Helper()
	app := fiber.New()
	handlers := []fiber.Handler{AuthMiddleware(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	app.Get("/protected", append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": GetUserID(c), "role": GetRole(c)})
	})...)
	return app
}

func token(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := jwt.Generate(testSecret, userID, role, "test", 5)
	require.NoError(t, err)
	return tok
}

// ── AuthMiddleware ────────────────────────────────────────────────────────────

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := newProtectedApp(t)

	tok, err := jwt.Generate("other-secret", 1, entity.RoleAdmin, "test", 5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, 7, entity.RolePartner))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ── RequireRole ───────────────────────────────────────────────────────────────

func TestRequireRole_Allowed(t *testing.T) {
	app := newProtectedApp(t, entity.RoleAdmin)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, 1, entity.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_Denied(t *testing.T) {
	app := newProtectedApp(t, entity.RoleAdmin)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, 2, entity.RolePartner))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	app := newProtectedApp(t, entity.RolePartner, entity.RoleAdmin)

	for _, role := range []string{entity.RolePartner, entity.RoleAdmin} {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 3, role))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "role %s should pass", role)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, 4, entity.RoleUser))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
