package controller_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minutemate/config"
	"minutemate/utils"
)

func TestRegister_CreatesUserWithDefaultRole(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"email":     "jane@example.com",
		"password":  "secret-password",
		"firstName": "Jane",
		"lastName":  "Doe",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Role      string `json:"role"`
	}
	decodeData(t, resp, &user)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
	assert.Equal(t, "user", user.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _ := setupTestApp(t)

	payload := fiber.Map{
		"email":     "jane@example.com",
		"password":  "secret-password",
		"firstName": "Jane",
		"lastName":  "Doe",
	}

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/auth/register", "", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestRegister_ValidationFailure(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := setupTestApp(t)
	registerAndLogin(t, app, "jane@example.com")

	// A failed sign-in issues no session
	resp := doJSON(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "jane@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// And protected resources remain unreachable
	resp = doJSON(t, app, fiber.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestGetCurrentUser(t *testing.T) {
	app, _ := setupTestApp(t)
	token, userID := registerAndLogin(t, app, "jane@example.com")

	resp := doJSON(t, app, fiber.MethodGet, "/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	decodeData(t, resp, &user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "user", user.Role)
}

func TestCurrentUser_RoleNormalizedOnLoad(t *testing.T) {
	app, db := setupTestApp(t)
	token, userID := registerAndLogin(t, app, "jane@example.com")

	// Simulate free-text role data written by another system
	require.NoError(t, db.Table("profiles").Where("id = ?", userID).
		Update("role", "owner").Error)

	resp := doJSON(t, app, fiber.MethodGet, "/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user struct {
		Role string `json:"role"`
	}
	decodeData(t, resp, &user)
	assert.Equal(t, "user", user.Role)
}

func TestLogout_InvalidatesTokens(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerAndLogin(t, app, "jane@example.com")

	resp := doJSON(t, app, fiber.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRefreshToken(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"email":     "jane@example.com",
		"password":  "secret-password",
		"firstName": "Jane",
		"lastName":  "Doe",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "jane@example.com",
		"password": "secret-password",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var auth authResponse
	decodeJSON(t, resp, &auth)

	resp = doJSON(t, app, fiber.MethodPost, "/auth/refresh", "", fiber.Map{
		"refreshToken": auth.RefreshToken,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refreshed authResponse
	decodeJSON(t, resp, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshToken_Expired(t *testing.T) {
	app, _ := setupTestApp(t)
	_, userID := registerAndLogin(t, app, "jane@example.com")

	claims := &utils.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/refresh", "", fiber.Map{
		"refreshToken": expired,
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
