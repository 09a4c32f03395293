package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"minutemate/config"
	"minutemate/routes"
	"minutemate/utils"
)

// setupTestApp builds the full route tree against an in-memory database.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// In-memory SQLite lives per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateDB(db))

	app := fiber.New()
	mailer := utils.NewMailer(config.SMTPConfig{})
	notifier := utils.NewNotifier(config.RedisConfig{})
	routes.SetupRoutes(app, db, mailer, notifier)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// envelope mirrors utils.SuccessResponse
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	var env envelope
	decodeJSON(t, resp, &env)
	require.True(t, env.Success, "expected success response, got error: %s", env.Error)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

type authResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         json.RawMessage `json:"user"`
}

// registerAndLogin creates an account and signs it in, returning the access
// token and user id.
func registerAndLogin(t *testing.T, app *fiber.App, email string) (string, string) {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"email":     email,
		"password":  "secret-password",
		"firstName": "Test",
		"lastName":  "User",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &created)

	resp = doJSON(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"email":    email,
		"password": "secret-password",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var auth authResponse
	decodeJSON(t, resp, &auth)
	require.NotEmpty(t, auth.AccessToken)

	return auth.AccessToken, created.ID
}
