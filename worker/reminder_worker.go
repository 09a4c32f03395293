package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"minutemate/models"
	"minutemate/utils"
)

// ReminderWorker emails assignees about tasks coming due and attendees about
// meetings happening today. It only runs while email notifications are
// enabled in the application settings.
type ReminderWorker struct {
	DB     *gorm.DB
	Mailer *utils.Mailer
	Logger *log.Logger
}

func NewReminderWorker(db *gorm.DB, mailer *utils.Mailer, logger *log.Logger) *ReminderWorker {
	return &ReminderWorker{
		DB:     db,
		Mailer: mailer,
		Logger: logger,
	}
}

func (rw *ReminderWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	rw.Logger.Println("Reminder worker started")

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rw.Logger.Println("Reminder worker shutting down...")
			return
		case <-ticker.C:
			rw.processReminders()
		}
	}
}

func (rw *ReminderWorker) processReminders() {
	var settings models.AppSettings
	if err := rw.DB.First(&settings).Error; err != nil {
		rw.Logger.Printf("Error loading settings: %v", err)
		return
	}
	if !settings.EmailNotifications {
		return
	}

	rw.processDueTasks()
	rw.processTodaysMeetings()
}

func (rw *ReminderWorker) processDueTasks() {
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().Add(24 * time.Hour).Format("2006-01-02")

	var tasks []models.Task
	err := rw.DB.Preload("Assignee").
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", today, tomorrow).
		Where("status IN ?", []string{string(models.TaskPending), string(models.TaskInProgress)}).
		Where("reminder_sent = ?", false).
		Find(&tasks).Error
	if err != nil {
		rw.Logger.Printf("Error fetching due tasks: %v", err)
		return
	}

	for _, task := range tasks {
		if task.Assignee == nil {
			continue
		}

		subject := fmt.Sprintf("Task due soon: %s", task.Title)
		body := fmt.Sprintf("Your task \"%s\" is due on %s.", task.Title, *task.DueDate)
		if err := rw.Mailer.SendReminderEmail(task.Assignee.Email, task.Assignee.FirstName, subject, body); err != nil {
			rw.Logger.Printf("Error sending task reminder for %s: %v", task.ID, err)
			continue
		}

		if err := rw.DB.Model(&task).Update("reminder_sent", true).Error; err != nil {
			rw.Logger.Printf("Error marking task %s reminded: %v", task.ID, err)
		}
	}
}

func (rw *ReminderWorker) processTodaysMeetings() {
	today := time.Now().Format("2006-01-02")

	var meetings []models.Meeting
	err := rw.DB.Preload("Attendees.User").
		Where("date = ?", today).
		Where("reminder_sent = ?", false).
		Find(&meetings).Error
	if err != nil {
		rw.Logger.Printf("Error fetching today's meetings: %v", err)
		return
	}

	for _, meeting := range meetings {
		for _, attendee := range meeting.Attendees {
			if attendee.User == nil {
				continue
			}

			subject := fmt.Sprintf("Meeting today: %s", meeting.Title)
			body := fmt.Sprintf("\"%s\" starts at %s today.", meeting.Title, meeting.StartTime)
			if err := rw.Mailer.SendReminderEmail(attendee.User.Email, attendee.User.FirstName, subject, body); err != nil {
				rw.Logger.Printf("Error sending meeting reminder for %s: %v", meeting.ID, err)
			}
		}

		if err := rw.DB.Model(&meeting).Update("reminder_sent", true).Error; err != nil {
			rw.Logger.Printf("Error marking meeting %s reminded: %v", meeting.ID, err)
		}
	}
}
