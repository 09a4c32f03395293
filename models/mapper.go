package models

// Row-to-view mappers. Pure and side-effect free: renaming between the
// persisted snake_case schema and the camelCase view shapes happens here, and
// free-text role/status/priority values are normalized into their closed sets
// on the way out. Untyped strings never flow past this file.

func ToUserView(p *Profile) UserView {
	return UserView{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Avatar:    p.Avatar,
		Role:      NormalizeRole(p.Role),
		CreatedAt: p.CreatedAt,
	}
}

func ToAttendeeView(a *MeetingAttendee) MeetingAttendeeView {
	view := MeetingAttendeeView{
		ID:         a.ID,
		UserID:     a.UserID,
		MeetingID:  a.MeetingID,
		IsPresent:  a.IsPresent,
		IsOptional: a.IsOptional,
	}
	if a.User != nil {
		user := ToUserView(a.User)
		view.User = &user
	}
	return view
}

func ToMeetingView(m *Meeting) MeetingView {
	view := MeetingView{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		Date:             m.Date,
		StartTime:        m.StartTime,
		EndTime:          m.EndTime,
		Location:         m.Location,
		IsRecurring:      m.IsRecurring,
		RecurringPattern: m.RecurringPattern,
		Minutes:          m.Minutes,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	for i := range m.Attendees {
		view.Attendees = append(view.Attendees, ToAttendeeView(&m.Attendees[i]))
	}
	return view
}

func ToTaskView(t *Task) TaskView {
	view := TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		AssigneeID:  t.AssigneeID,
		MeetingID:   t.MeetingID,
		DueDate:     t.DueDate,
		Status:      NormalizeStatus(t.Status),
		Priority:    NormalizePriority(t.Priority),
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Assignee != nil {
		assignee := ToUserView(t.Assignee)
		view.Assignee = &assignee
	}
	return view
}

// ToTeamView carries the per-viewer derived fields computed by the caller
// (member count and the current user's membership flags).
func ToTeamView(t *Team, membersCount int64, isMember, isAdmin bool) TeamView {
	return TeamView{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		MembersCount: membersCount,
		IsMember:     isMember,
		IsAdmin:      isAdmin,
	}
}

func ToSettingsView(s *AppSettings) AppSettingsView {
	return AppSettingsView{
		ID:                     s.ID,
		CompanyName:            s.CompanyName,
		CompanyLogo:            s.CompanyLogo,
		DefaultMeetingDuration: s.DefaultMeetingDuration,
		EmailNotifications:     s.EmailNotifications,
		UpdatedAt:              s.UpdatedAt,
	}
}
