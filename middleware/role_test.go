package middleware

import (
	"bookmydoctor/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin-only", JWTMiddleware, RequireRoles(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, token, accept string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGuardMissingToken(t *testing.T) {
	setupJWTTest(t)
	app := guardedApp()

	resp := doRequest(t, app, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuardMissingTokenBrowserRedirectsToLogin(t *testing.T) {
	setupJWTTest(t)
	app := guardedApp()

	resp := doRequest(t, app, "", "text/html")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestGuardMalformedToken(t *testing.T) {
	setupJWTTest(t)
	app := guardedApp()

	resp := doRequest(t, app, "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuardWrongRoleForbidden(t *testing.T) {
	setupJWTTest(t)
	app := guardedApp()

	token, err := GenerateJWT(9, "Asha Verma", models.RolePatient, "asha@x.com")
	require.NoError(t, err)

	resp := doRequest(t, app, token, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// A browser with the wrong role lands on its own dashboard, not an error page.
func TestGuardWrongRoleBrowserRedirectsToOwnDashboard(t *testing.T) {
	setupJWTTest(t)
	app := guardedApp()

	token, err := GenerateJWT(9, "Asha Verma", models.RolePatient, "asha@x.com")
	require.NoError(t, err)

	resp := doRequest(t, app, token, "text/html")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard/patient", resp.Header.Get("Location"))
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	setupJWTTest(t)
	app := guardedApp()

	token, err := GenerateJWT(1, "Admin", models.RoleAdmin, "admin@x.com")
	require.NoError(t, err)

	resp := doRequest(t, app, token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
