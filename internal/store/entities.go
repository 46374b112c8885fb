package store

// ─── Entities ────────────────────────────────────────────────────────────────

// Employer is a company the user works for.
type Employer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Website   *string `json:"website,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// Client is a customer, optionally belonging to an employer.
type Client struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	EmployerID   *string `json:"employer_id,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// Project groups work sessions and action items under a client.
type Project struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ClientID  *string  `json:"client_id,omitempty"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// Person is a contact.
type Person struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Email     *string `json:"email,omitempty"`
	Company   *string `json:"company,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// WorkSession is a block of tracked work. DurationHours is a decimal
// string and must survive aggregation without float drift.
type WorkSession struct {
	ID            string   `json:"id"`
	ProjectID     *string  `json:"project_id,omitempty"`
	Description   string   `json:"description"`
	DurationHours string   `json:"duration_hours"`
	SessionDate   string   `json:"session_date"`
	PrivacyLevel  string   `json:"privacy_level"`
	Tags          []string `json:"tags,omitempty"`
	OnBehalfOfID  *string  `json:"on_behalf_of,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// Meeting is a scheduled discussion, optionally tied to a project.
type Meeting struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Agenda       *string  `json:"agenda,omitempty"`
	MeetingDate  string   `json:"meeting_date"`
	ProjectID    *string  `json:"project_id,omitempty"`
	PrivacyLevel string   `json:"privacy_level"`
	Tags         []string `json:"tags,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// Attendee links a person to a meeting.
type Attendee struct {
	ID        string  `json:"id"`
	MeetingID string  `json:"meeting_id"`
	PersonID  string  `json:"person_id"`
	Role      *string `json:"role,omitempty"`
}

// Reminder is a one-shot or recurring notification. The recurrence
// columns are nil for one-shot reminders.
type Reminder struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Message     *string `json:"message,omitempty"`
	DueAt       string  `json:"due_at"`
	Frequency   *string `json:"frequency,omitempty"`
	DayOfWeek   *int    `json:"day_of_week,omitempty"`
	DayOfMonth  *int    `json:"day_of_month,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// Note is a dated free-text record.
type Note struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	NoteDate     string   `json:"note_date"`
	PrivacyLevel string   `json:"privacy_level"`
	Tags         []string `json:"tags,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// ActionItem is a tracked to-do, optionally tied to a project.
type ActionItem struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    *int     `json:"priority,omitempty"`
	ProjectID   *string  `json:"project_id,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// Bookmark is a saved link.
type Bookmark struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"created_at"`
}
