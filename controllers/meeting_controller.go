package controller

import (
	"fmt"
	"log"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"minutemate/models"
	"minutemate/utils"
)

type MeetingController struct {
	DB       *gorm.DB
	Mailer   *utils.Mailer
	Notifier *utils.Notifier
	Logger   *log.Logger
}

func NewMeetingController(db *gorm.DB, mailer *utils.Mailer, notifier *utils.Notifier, logger *log.Logger) *MeetingController {
	return &MeetingController{
		DB:       db,
		Mailer:   mailer,
		Notifier: notifier,
		Logger:   logger,
	}
}

func (mc *MeetingController) CreateMeeting(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	var input models.MeetingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	meeting := input.ToRow(user.ID)
	if err := mc.DB.Create(&meeting).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create meeting", err)
	}

	mc.Notifier.Publish(utils.ChangeEvent{Entity: "meetings", Action: "insert", ID: meeting.ID})

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(models.ToMeetingView(&meeting)))
}

func (mc *MeetingController) GetMeetings(c *fiber.Ctx) error {
	var meetings []models.Meeting
	query := mc.DB.Preload("Attendees.User").Order("date DESC, start_time DESC")

	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	if err := query.Find(&meetings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch meetings", err)
	}

	views := make([]models.MeetingView, 0, len(meetings))
	for i := range meetings {
		views = append(views, models.ToMeetingView(&meetings[i]))
	}

	return c.JSON(utils.SuccessResponse(views))
}

func (mc *MeetingController) GetMeeting(c *fiber.Ctx) error {
	var meeting models.Meeting
	if err := mc.DB.Preload("Attendees.User").First(&meeting, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
	}

	return c.JSON(utils.SuccessResponse(models.ToMeetingView(&meeting)))
}

func (mc *MeetingController) UpdateMeeting(c *fiber.Ctx) error {
	var input models.MeetingUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var meeting models.Meeting
	if err := mc.DB.First(&meeting, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
	}

	input.ApplyTo(&meeting)

	// Select forces cleared nullables (recurring_pattern) to be written too
	if err := mc.DB.Model(&meeting).
		Select("title", "description", "date", "start_time", "end_time",
			"location", "is_recurring", "recurring_pattern", "updated_at").
		Updates(&meeting).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update meeting", err)
	}

	mc.Notifier.Publish(utils.ChangeEvent{Entity: "meetings", Action: "update", ID: meeting.ID})

	return c.JSON(utils.SuccessResponse(models.ToMeetingView(&meeting)))
}

func (mc *MeetingController) DeleteMeeting(c *fiber.Ctx) error {
	var meeting models.Meeting
	if err := mc.DB.First(&meeting, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
	}

	if err := mc.DB.Select("Attendees").Delete(&meeting).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete meeting", err)
	}

	mc.Notifier.Publish(utils.ChangeEvent{Entity: "meetings", Action: "delete", ID: meeting.ID})

	return c.JSON(fiber.Map{"message": "Meeting deleted"})
}

// UpdateAttendees replaces the attendee set of a meeting.
func (mc *MeetingController) UpdateAttendees(c *fiber.Ctx) error {
	var input struct {
		Attendees []models.AttendeeInput `json:"attendees" validate:"dive"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var meeting models.Meeting
	if err := mc.DB.First(&meeting, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
	}

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meeting.ID).Delete(&models.MeetingAttendee{}).Error; err != nil {
			return err
		}
		for _, a := range input.Attendees {
			attendee := models.MeetingAttendee{
				MeetingID:  meeting.ID,
				UserID:     a.UserID,
				IsPresent:  a.IsPresent,
				IsOptional: a.IsOptional,
			}
			if err := tx.Create(&attendee).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update attendees", err)
	}

	mc.Notifier.Publish(utils.ChangeEvent{Entity: "meetings", Action: "update", ID: meeting.ID})

	if err := mc.DB.Preload("Attendees.User").First(&meeting, "id = ?", meeting.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reload meeting", err)
	}

	return c.JSON(utils.SuccessResponse(models.ToMeetingView(&meeting)))
}

// SaveMinutes stores the markdown draft of a meeting's minutes.
func (mc *MeetingController) SaveMinutes(c *fiber.Ctx) error {
	var input struct {
		Minutes string `json:"minutes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	var meeting models.Meeting
	if err := mc.DB.First(&meeting, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
	}

	meeting.Minutes = &input.Minutes
	if err := mc.DB.Model(&meeting).Update("minutes", meeting.Minutes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save minutes", err)
	}

	mc.Notifier.Publish(utils.ChangeEvent{Entity: "meetings", Action: "update", ID: meeting.ID})

	return c.JSON(utils.SuccessResponse(models.ToMeetingView(&meeting)))
}

// ExportMinutes downloads the raw markdown of a meeting's minutes.
func (mc *MeetingController) ExportMinutes(c *fiber.Ctx) error {
	var meeting models.Meeting
	if err := mc.DB.First(&meeting, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
	}

	minutes := ""
	if meeting.Minutes != nil {
		minutes = *meeting.Minutes
	}

	filename := fmt.Sprintf("meeting_minutes_%s.md", meeting.ID)
	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.SendString(minutes)
}

type ShareMinutesRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ShareMinutes emails a meeting's minutes to the given address.
func (mc *MeetingController) ShareMinutes(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	var req ShareMinutesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid email address", err)
	}

	var meeting models.Meeting
	if err := mc.DB.First(&meeting, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
	}

	minutes := ""
	if meeting.Minutes != nil {
		minutes = *meeting.Minutes
	}

	senderName := user.FirstName + " " + user.LastName
	if err := mc.Mailer.SendMinutesEmail(req.Email, senderName, meeting.Title, meeting.Date, minutes); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to share minutes", err)
	}

	return c.JSON(fiber.Map{"message": "Minutes shared with " + req.Email})
}
