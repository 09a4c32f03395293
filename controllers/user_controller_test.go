package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsers(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerAndLogin(t, app, "jane@example.com")
	registerAndLogin(t, app, "sam@example.com")

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/users/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var users []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeData(t, resp, &users)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "user", u.Role)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerAndLogin(t, app, "jane@example.com")

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/users/no-such-user", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
