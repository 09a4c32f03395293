package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team represents a group of users collaborating on meetings and tasks
type Team struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description,omitempty"`

	CreatedBy string    `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Members []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TeamMember joins a profile to a team
type TeamMember struct {
	ID       string    `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_team_user" json:"team_id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_team_user" json:"user_id"`
	IsAdmin  bool      `gorm:"default:false" json:"is_admin"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relations
	Team *Team    `gorm:"foreignKey:TeamID" json:"-"`
	User *Profile `gorm:"foreignKey:UserID" json:"-"`
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
