package models

// Inverse mappers: camelCase input payloads back into persisted rows. Create
// inputs produce a full row; update inputs use pointer fields so only the
// supplied fields are written.

type AttendeeInput struct {
	UserID     string `json:"userId" validate:"required"`
	IsPresent  bool   `json:"isPresent"`
	IsOptional bool   `json:"isOptional"`
}

type MeetingInput struct {
	Title            string          `json:"title" validate:"required,max=200"`
	Description      *string         `json:"description"`
	Date             string          `json:"date" validate:"required"`
	StartTime        string          `json:"startTime" validate:"required"`
	EndTime          string          `json:"endTime" validate:"required"`
	Location         *string         `json:"location"`
	IsRecurring      bool            `json:"isRecurring"`
	RecurringPattern *string         `json:"recurringPattern"`
	Minutes          *string         `json:"minutes"`
	Attendees        []AttendeeInput `json:"attendees" validate:"omitempty,dive"`
}

// resolvePattern enforces the recurrence invariant: a pattern is meaningful
// only while is_recurring is true. Recurring meetings without an explicit
// pattern default to weekly; non-recurring meetings get their pattern nulled.
func resolvePattern(isRecurring bool, pattern *string) *string {
	if !isRecurring {
		return nil
	}
	if pattern == nil || *pattern == "" {
		weekly := "weekly"
		return &weekly
	}
	return pattern
}

func (in *MeetingInput) ToRow(createdBy string) Meeting {
	meeting := Meeting{
		Title:            in.Title,
		Description:      in.Description,
		Date:             in.Date,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		Location:         in.Location,
		IsRecurring:      in.IsRecurring,
		RecurringPattern: resolvePattern(in.IsRecurring, in.RecurringPattern),
		Minutes:          in.Minutes,
		CreatedBy:        createdBy,
	}
	for _, a := range in.Attendees {
		meeting.Attendees = append(meeting.Attendees, MeetingAttendee{
			UserID:     a.UserID,
			IsPresent:  a.IsPresent,
			IsOptional: a.IsOptional,
		})
	}
	return meeting
}

type MeetingUpdateInput struct {
	Title            *string `json:"title" validate:"omitempty,max=200"`
	Description      *string `json:"description"`
	Date             *string `json:"date"`
	StartTime        *string `json:"startTime"`
	EndTime          *string `json:"endTime"`
	Location         *string `json:"location"`
	IsRecurring      *bool   `json:"isRecurring"`
	RecurringPattern *string `json:"recurringPattern"`
}

// ApplyTo writes the supplied fields onto an existing row. The recurrence
// invariant is re-evaluated whenever either recurrence field is supplied.
func (in *MeetingUpdateInput) ApplyTo(m *Meeting) {
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = in.Description
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	if in.StartTime != nil {
		m.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		m.EndTime = *in.EndTime
	}
	if in.Location != nil {
		m.Location = in.Location
	}
	if in.IsRecurring != nil {
		m.IsRecurring = *in.IsRecurring
	}
	if in.IsRecurring != nil || in.RecurringPattern != nil {
		pattern := in.RecurringPattern
		if pattern == nil {
			pattern = m.RecurringPattern
		}
		m.RecurringPattern = resolvePattern(m.IsRecurring, pattern)
	}
}

type TaskInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
	AssigneeID  string  `json:"assigneeId" validate:"required"`
	MeetingID   *string `json:"meetingId"`
	DueDate     *string `json:"dueDate"`
	Status      string  `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func (in *TaskInput) ToRow(createdBy string) Task {
	return Task{
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
		MeetingID:   in.MeetingID,
		DueDate:     in.DueDate,
		Status:      string(NormalizeStatus(in.Status)),
		Priority:    string(NormalizePriority(in.Priority)),
		CreatedBy:   createdBy,
	}
}

type TaskUpdateInput struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	AssigneeID  *string `json:"assigneeId"`
	MeetingID   *string `json:"meetingId"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func (in *TaskUpdateInput) ApplyTo(t *Task) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.AssigneeID != nil {
		t.AssigneeID = *in.AssigneeID
	}
	if in.MeetingID != nil {
		t.MeetingID = in.MeetingID
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.Status != nil {
		t.Status = string(NormalizeStatus(*in.Status))
	}
	if in.Priority != nil {
		t.Priority = string(NormalizePriority(*in.Priority))
	}
}

type TeamInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

func (in *TeamInput) ToRow(createdBy string) Team {
	return Team{
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   createdBy,
	}
}

type SettingsUpdateInput struct {
	CompanyName            *string `json:"companyName" validate:"omitempty,max=200"`
	CompanyLogo            *string `json:"companyLogo"`
	DefaultMeetingDuration *int    `json:"defaultMeetingDuration" validate:"omitempty,min=5,max=480"`
	EmailNotifications     *bool   `json:"emailNotifications"`
}

func (in *SettingsUpdateInput) ApplyTo(s *AppSettings) {
	if in.CompanyName != nil {
		s.CompanyName = *in.CompanyName
	}
	if in.CompanyLogo != nil {
		s.CompanyLogo = in.CompanyLogo
	}
	if in.DefaultMeetingDuration != nil {
		s.DefaultMeetingDuration = *in.DefaultMeetingDuration
	}
	if in.EmailNotifications != nil {
		s.EmailNotifications = *in.EmailNotifications
	}
}
