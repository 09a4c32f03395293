package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"

	controller "minutemate/controllers"
	"minutemate/middleware"
	"minutemate/utils"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, mailer *utils.Mailer, notifier *utils.Notifier) {
	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	setupAuthRoutes(app, db, mailer)
	setupAPIRoutes(app, db, mailer, notifier)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}

func setupAuthRoutes(app *fiber.App, db *gorm.DB, mailer *utils.Mailer) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)
	authController := controller.NewAuthController(db, mailer, authLogger)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (no authentication required)
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/refresh", authController.RefreshToken)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected(db))
	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Get("/me", authController.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func setupAPIRoutes(app *fiber.App, db *gorm.DB, mailer *utils.Mailer, notifier *utils.Notifier) {
	meetingController := controller.NewMeetingController(db, mailer, notifier, log.New(os.Stdout, "MEETING: ", log.LstdFlags))
	taskController := controller.NewTaskController(db, notifier, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	teamController := controller.NewTeamController(db, notifier, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	settingsController := controller.NewSettingsController(db, notifier, log.New(os.Stdout, "SETTINGS: ", log.LstdFlags))
	userController := controller.NewUserController(db, log.New(os.Stdout, "USER: ", log.LstdFlags))

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(db), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// User routes
	user := api.Group("/users")
	user.Get("/", userController.GetUsers)
	user.Get("/:id", userController.GetUser)

	// Meeting routes
	meeting := api.Group("/meetings")
	meeting.Post("/", meetingController.CreateMeeting)
	meeting.Get("/", meetingController.GetMeetings)
	meeting.Get("/:id", meetingController.GetMeeting)
	meeting.Put("/:id", meetingController.UpdateMeeting)
	meeting.Delete("/:id", meetingController.DeleteMeeting)
	meeting.Put("/:id/attendees", meetingController.UpdateAttendees)
	meeting.Put("/:id/minutes", meetingController.SaveMinutes)
	meeting.Get("/:id/minutes/export", meetingController.ExportMinutes)
	meeting.Post("/:id/minutes/share", meetingController.ShareMinutes)

	// Task routes
	task := api.Group("/tasks")
	task.Post("/", taskController.CreateTask)
	task.Get("/", taskController.GetTasks)
	task.Get("/:id", taskController.GetTask)
	task.Put("/:id", taskController.UpdateTask)
	task.Patch("/:id/status", taskController.UpdateTaskStatus)
	task.Delete("/:id", taskController.DeleteTask)

	// Team routes
	team := api.Group("/teams")
	team.Post("/", teamController.CreateTeam)
	team.Get("/", teamController.GetTeams)
	team.Get("/my", teamController.GetMyTeams)
	team.Post("/:id/join", teamController.JoinTeam)
	team.Delete("/:id/leave", teamController.LeaveTeam)

	// Settings routes (writes restricted to admins)
	settings := api.Group("/settings")
	settings.Get("/", settingsController.GetSettings)
	settings.Put("/", middleware.RequireAdmin(), settingsController.UpdateSettings)

	// WebSocket route for entity change events
	app.Get("/api/v1/events", websocket.New(controller.HandleChangeEventsWS(notifier)))

	log.Println("API routes initialized successfully")
}
