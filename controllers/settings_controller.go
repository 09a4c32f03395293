package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"minutemate/models"
	"minutemate/utils"
)

type SettingsController struct {
	DB       *gorm.DB
	Notifier *utils.Notifier
	Logger   *log.Logger
}

func NewSettingsController(db *gorm.DB, notifier *utils.Notifier, logger *log.Logger) *SettingsController {
	return &SettingsController{
		DB:       db,
		Notifier: notifier,
		Logger:   logger,
	}
}

// loadOrCreate returns the singleton settings row, creating defaults on first
// read.
func (sc *SettingsController) loadOrCreate() (*models.AppSettings, error) {
	var settings models.AppSettings
	err := sc.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.AppSettings{
			CompanyName:            "MinuteMate",
			DefaultMeetingDuration: 30,
			EmailNotifications:     true,
		}
		if err := sc.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (sc *SettingsController) GetSettings(c *fiber.Ctx) error {
	settings, err := sc.loadOrCreate()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load settings", err)
	}

	return c.JSON(utils.SuccessResponse(models.ToSettingsView(settings)))
}

func (sc *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	var input models.SettingsUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	settings, err := sc.loadOrCreate()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load settings", err)
	}

	input.ApplyTo(settings)

	if err := sc.DB.Model(settings).
		Select("company_name", "company_logo", "default_meeting_duration",
			"email_notifications", "updated_at").
		Updates(settings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update settings", err)
	}

	sc.Notifier.Publish(utils.ChangeEvent{Entity: "app_settings", Action: "update", ID: settings.ID})

	return c.JSON(utils.SuccessResponse(models.ToSettingsView(settings)))
}
