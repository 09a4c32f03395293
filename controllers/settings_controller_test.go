package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type settingsView struct {
	ID                     string  `json:"id"`
	CompanyName            string  `json:"companyName"`
	CompanyLogo            *string `json:"companyLogo"`
	DefaultMeetingDuration int     `json:"defaultMeetingDuration"`
	EmailNotifications     bool    `json:"emailNotifications"`
}

func promoteToAdmin(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	require.NoError(t, db.Table("profiles").Where("id = ?", userID).
		Update("role", "admin").Error)
}

func TestGetSettings_CreatesDefaultsOnFirstRead(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerAndLogin(t, app, "jane@example.com")

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/settings/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var settings settingsView
	decodeData(t, resp, &settings)

	assert.NotEmpty(t, settings.ID)
	assert.Equal(t, "MinuteMate", settings.CompanyName)
	assert.Equal(t, 30, settings.DefaultMeetingDuration)
	assert.True(t, settings.EmailNotifications)
}

func TestUpdateSettings_RequiresAdmin(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerAndLogin(t, app, "jane@example.com")

	resp := doJSON(t, app, fiber.MethodPut, "/api/v1/settings/", token, fiber.Map{
		"companyName": "Acme",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateSettings_AsAdmin(t *testing.T) {
	app, db := setupTestApp(t)
	token, userID := registerAndLogin(t, app, "admin@example.com")
	promoteToAdmin(t, db, userID)

	resp := doJSON(t, app, fiber.MethodPut, "/api/v1/settings/", token, fiber.Map{
		"companyName":            "Acme",
		"defaultMeetingDuration": 45,
		"emailNotifications":     false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated settingsView
	decodeData(t, resp, &updated)
	assert.Equal(t, "Acme", updated.CompanyName)
	assert.Equal(t, 45, updated.DefaultMeetingDuration)
	assert.False(t, updated.EmailNotifications)

	// Unsupplied fields survive a later partial update
	resp = doJSON(t, app, fiber.MethodPut, "/api/v1/settings/", token, fiber.Map{
		"companyName": "Acme Corp",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var partial settingsView
	decodeData(t, resp, &partial)
	assert.Equal(t, "Acme Corp", partial.CompanyName)
	assert.Equal(t, 45, partial.DefaultMeetingDuration)
	assert.False(t, partial.EmailNotifications)
}
