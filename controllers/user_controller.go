package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"minutemate/models"
	"minutemate/utils"
)

type UserController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewUserController(db *gorm.DB, logger *log.Logger) *UserController {
	return &UserController{
		DB:     db,
		Logger: logger,
	}
}

// GetUsers lists every profile, mapped into user views. Used by attendee and
// assignee pickers.
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	var profiles []models.Profile
	if err := uc.DB.Order("first_name, last_name").Find(&profiles).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
	}

	views := make([]models.UserView, 0, len(profiles))
	for i := range profiles {
		views = append(views, models.ToUserView(&profiles[i]))
	}

	return c.JSON(utils.SuccessResponse(views))
}

// GetUser returns one profile by id.
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	var profile models.Profile
	if err := uc.DB.First(&profile, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	return c.JSON(utils.SuccessResponse(models.ToUserView(&profile)))
}
