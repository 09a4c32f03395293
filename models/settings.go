package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppSettings is the single global configuration row
type AppSettings struct {
	ID                     string    `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName            string    `gorm:"not null" json:"company_name"`
	CompanyLogo            *string   `json:"company_logo,omitempty"`
	DefaultMeetingDuration int       `gorm:"default:30" json:"default_meeting_duration"`
	EmailNotifications     bool      `gorm:"default:true" json:"email_notifications"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (s *AppSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
