package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meeting represents a scheduled meeting and its recorded minutes
type Meeting struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description *string `json:"description,omitempty"`

	// Date is "YYYY-MM-DD", times are "HH:MM" wall-clock strings
	Date      string `gorm:"not null;index" json:"date"`
	StartTime string `gorm:"not null" json:"start_time"`
	EndTime   string `gorm:"not null" json:"end_time"`

	Location         *string `json:"location,omitempty"`
	IsRecurring      bool    `gorm:"default:false" json:"is_recurring"`
	RecurringPattern *string `json:"recurring_pattern,omitempty"` // daily, weekly, biweekly, monthly

	// Minutes holds the markdown text of the meeting minutes
	Minutes *string `json:"minutes,omitempty"`

	ReminderSent bool `gorm:"default:false" json:"-"`

	CreatedBy string    `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Attendees []MeetingAttendee `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"attendees,omitempty"`
	Creator   *Profile          `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MeetingAttendee joins a profile to a meeting
type MeetingAttendee struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	MeetingID string `gorm:"type:uuid;not null;index" json:"meeting_id"`
	UserID    string `gorm:"type:uuid;not null;index" json:"user_id"`

	IsPresent  bool `gorm:"default:false" json:"is_present"`
	IsOptional bool `gorm:"default:false" json:"is_optional"`

	// Relations
	User *Profile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (a *MeetingAttendee) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
