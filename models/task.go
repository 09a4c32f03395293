package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task represents a follow-up action item, optionally tied to a meeting
type Task struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description *string `json:"description,omitempty"`

	AssigneeID string  `gorm:"type:uuid;not null;index" json:"assignee_id"`
	MeetingID  *string `gorm:"type:uuid;index" json:"meeting_id,omitempty"` // nullable: standalone tasks are allowed
	DueDate    *string `json:"due_date,omitempty"`                          // "YYYY-MM-DD"

	Status   string `gorm:"default:'pending'" json:"status"`  // pending, in-progress, completed, cancelled
	Priority string `gorm:"default:'medium'" json:"priority"` // low, medium, high

	ReminderSent bool `gorm:"default:false" json:"-"`

	CreatedBy string    `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Assignee *Profile `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Meeting  *Meeting `gorm:"foreignKey:MeetingID" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
