package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"minutemate/models"
	"minutemate/utils"
)

type TaskController struct {
	DB       *gorm.DB
	Notifier *utils.Notifier
	Logger   *log.Logger
}

func NewTaskController(db *gorm.DB, notifier *utils.Notifier, logger *log.Logger) *TaskController {
	return &TaskController{
		DB:       db,
		Notifier: notifier,
		Logger:   logger,
	}
}

func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	var input models.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var assignee models.Profile
	if err := tc.DB.First(&assignee, "id = ?", input.AssigneeID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Assignee not found", nil)
	}

	// meeting_id is optional: standalone tasks are allowed
	if input.MeetingID != nil {
		var meeting models.Meeting
		if err := tc.DB.First(&meeting, "id = ?", *input.MeetingID).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
		}
	}

	task := input.ToRow(user.ID)
	if err := tc.DB.Create(&task).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create task", err)
	}

	task.Assignee = &assignee
	tc.Notifier.Publish(utils.ChangeEvent{Entity: "tasks", Action: "insert", ID: task.ID})

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(models.ToTaskView(&task)))
}

func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	query := tc.DB.Preload("Assignee").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", string(models.NormalizeStatus(status)))
	}
	if meetingID := c.Query("meeting_id"); meetingID != "" {
		query = query.Where("meeting_id = ?", meetingID)
	}
	if assigneeID := c.Query("assignee_id"); assigneeID != "" {
		query = query.Where("assignee_id = ?", assigneeID)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tasks", err)
	}

	views := make([]models.TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, models.ToTaskView(&tasks[i]))
	}

	return c.JSON(utils.SuccessResponse(views))
}

func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	var task models.Task
	if err := tc.DB.Preload("Assignee").First(&task, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	return c.JSON(utils.SuccessResponse(models.ToTaskView(&task)))
}

func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	var input models.TaskUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var task models.Task
	if err := tc.DB.First(&task, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	if input.AssigneeID != nil {
		var assignee models.Profile
		if err := tc.DB.First(&assignee, "id = ?", *input.AssigneeID).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Assignee not found", nil)
		}
	}

	input.ApplyTo(&task)

	if err := tc.DB.Model(&task).
		Select("title", "description", "assignee_id", "meeting_id", "due_date",
			"status", "priority", "updated_at").
		Updates(&task).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update task", err)
	}

	tc.Notifier.Publish(utils.ChangeEvent{Entity: "tasks", Action: "update", ID: task.ID})

	if err := tc.DB.Preload("Assignee").First(&task, "id = ?", task.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reload task", err)
	}

	return c.JSON(utils.SuccessResponse(models.ToTaskView(&task)))
}

type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed cancelled"`
}

// UpdateTaskStatus changes a task's status. Every state is reachable from
// every other state, and repeating the same target status is a no-op, so the
// operation is idempotent. The row is persisted before the new state is
// returned; clients that applied the change optimistically roll back when
// this call fails.
func (tc *TaskController) UpdateTaskStatus(c *fiber.Ctx) error {
	var req TaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var task models.Task
	if err := tc.DB.Preload("Assignee").First(&task, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	task.Status = string(models.NormalizeStatus(req.Status))
	if err := tc.DB.Model(&task).Update("status", task.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update task status", err)
	}

	tc.Notifier.Publish(utils.ChangeEvent{Entity: "tasks", Action: "update", ID: task.ID})

	return c.JSON(utils.SuccessResponse(models.ToTaskView(&task)))
}

func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	var task models.Task
	if err := tc.DB.First(&task, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	if err := tc.DB.Delete(&task).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete task", err)
	}

	tc.Notifier.Publish(utils.ChangeEvent{Entity: "tasks", Action: "delete", ID: task.ID})

	return c.JSON(fiber.Map{"message": "Task deleted"})
}
