package models

import "time"

// Role is the closed set of user roles. Persisted role strings are free text
// owned by the database; they are normalized into this set at load time and
// never flow past the mapper unchecked.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// NormalizeRole maps a persisted role value into the closed Role set.
// Anything other than "admin" or "guest" becomes "user".
func NormalizeRole(value string) Role {
	switch value {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleGuest):
		return RoleGuest
	default:
		return RoleUser
	}
}

// TaskStatus is the closed set of task states. All four states are mutually
// reachable; no ordering is enforced.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// NormalizeStatus maps a persisted status value into the closed set,
// defaulting to "pending".
func NormalizeStatus(value string) TaskStatus {
	switch TaskStatus(value) {
	case TaskInProgress, TaskCompleted, TaskCancelled:
		return TaskStatus(value)
	default:
		return TaskPending
	}
}

// TaskPriority is the closed set of task priorities.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// NormalizePriority maps a persisted priority value into the closed set,
// defaulting to "medium".
func NormalizePriority(value string) TaskPriority {
	switch TaskPriority(value) {
	case PriorityLow, PriorityHigh:
		return TaskPriority(value)
	default:
		return PriorityMedium
	}
}

// View models: the camelCase shapes served to clients. Optional columns stay
// pointers so absent stays absent in the JSON output.

type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Avatar    *string   `json:"avatar,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type MeetingAttendeeView struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	MeetingID  string    `json:"meetingId"`
	User       *UserView `json:"user,omitempty"`
	IsPresent  bool      `json:"isPresent"`
	IsOptional bool      `json:"isOptional"`
}

type MeetingView struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      *string               `json:"description,omitempty"`
	Date             string                `json:"date"`
	StartTime        string                `json:"startTime"`
	EndTime          string                `json:"endTime"`
	Location         *string               `json:"location,omitempty"`
	IsRecurring      bool                  `json:"isRecurring"`
	RecurringPattern *string               `json:"recurringPattern,omitempty"`
	Minutes          *string               `json:"minutes,omitempty"`
	CreatedBy        string                `json:"createdBy"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	Attendees        []MeetingAttendeeView `json:"attendees,omitempty"`
}

type TaskView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	AssigneeID  string       `json:"assigneeId"`
	Assignee    *UserView    `json:"assignee,omitempty"`
	MeetingID   *string      `json:"meetingId,omitempty"`
	DueDate     *string      `json:"dueDate,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedBy   string       `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type TeamView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	MembersCount int64     `json:"membersCount"`
	IsMember     bool      `json:"isMember"`
	IsAdmin      bool      `json:"isAdmin"`
}

type AppSettingsView struct {
	ID                     string    `json:"id"`
	CompanyName            string    `json:"companyName"`
	CompanyLogo            *string   `json:"companyLogo,omitempty"`
	DefaultMeetingDuration int       `json:"defaultMeetingDuration"`
	EmailNotifications     bool      `json:"emailNotifications"`
	UpdatedAt              time.Time `json:"updatedAt"`
}
