package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsTestApp() *fiber.App {
	app := fiber.New()
	app.Use(CORS())
	app.Get("/download", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="minutes.md"`)
		return c.SendString("# Minutes")
	})
	return app
}

func TestCORS_Preflight(t *testing.T) {
	app := corsTestApp()

	req := httptest.NewRequest(fiber.MethodOptions, "/download", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "GET")
	assert.Equal(t, "3600", resp.Header.Get("Access-Control-Max-Age"))
}

func TestCORS_ExposeHeadersOnActualResponse(t *testing.T) {
	app := corsTestApp()

	// Scripts can only read exposed headers when the header arrives on the
	// actual response, not just the preflight
	req := httptest.NewRequest(fiber.MethodGet, "/download", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	app := corsTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/download", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
