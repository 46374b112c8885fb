package query

// DefaultRegistry declares the daybook entity schemas. The column layout
// mirrors the store's migrations; the two must stay in sync.
//
// The work_session alias on_behalf_of -> on_behalf_of_id preserves the
// historical query-facing name of that field.
func DefaultRegistry() *Registry {
	employer := newEntity("employer", "employers").
		scalar("id", "id", TypeString).
		scalar("name", "name", TypeString).
		scalar("website", "website", TypeString).
		scalar("created_at", "created_at", TypeTimestamp)

	client := newEntity("client", "clients").
		scalar("id", "id", TypeString).
		scalar("name", "name", TypeString).
		scalar("employer_id", "employer_id", TypeString).
		scalar("contact_email", "contact_email", TypeString).
		scalar("created_at", "created_at", TypeTimestamp).
		rel("employer", "employer", One, "employer_id")

	project := newEntity("project", "projects").
		scalar("id", "id", TypeString).
		scalar("name", "name", TypeString).
		scalar("client_id", "client_id", TypeString).
		scalar("status", "status", TypeEnum).
		scalar("tags", "tags", TypeStringArray).
		scalar("created_at", "created_at", TypeTimestamp).
		rel("client", "client", One, "client_id").
		rel("work_sessions", "work_session", Many, "project_id").
		rel("action_items", "action_item", Many, "project_id")

	person := newEntity("person", "people").
		scalar("id", "id", TypeString).
		scalar("full_name", "full_name", TypeString).
		scalar("email", "email", TypeString).
		scalar("company", "company", TypeString).
		scalar("notes", "notes", TypeString).
		scalar("created_at", "created_at", TypeTimestamp)

	workSession := newEntity("work_session", "work_sessions").
		scalar("id", "id", TypeString).
		scalar("project_id", "project_id", TypeString).
		scalar("description", "description", TypeString).
		scalar("duration_hours", "duration_hours", TypeDecimal).
		scalar("session_date", "session_date", TypeDate).
		scalar("privacy_level", "privacy_level", TypeEnum).
		scalar("tags", "tags", TypeStringArray).
		scalar("on_behalf_of_id", "on_behalf_of_id", TypeString).
		scalar("created_at", "created_at", TypeTimestamp).
		alias("on_behalf_of", "on_behalf_of_id").
		rel("project", "project", One, "project_id").
		rel("on_behalf_of_person", "person", One, "on_behalf_of_id")

	meeting := newEntity("meeting", "meetings").
		scalar("id", "id", TypeString).
		scalar("title", "title", TypeString).
		scalar("agenda", "agenda", TypeString).
		scalar("meeting_date", "meeting_date", TypeDate).
		scalar("project_id", "project_id", TypeString).
		scalar("privacy_level", "privacy_level", TypeEnum).
		scalar("tags", "tags", TypeStringArray).
		scalar("created_at", "created_at", TypeTimestamp).
		rel("project", "project", One, "project_id").
		rel("attendees", "meeting_attendee", Many, "meeting_id")

	attendee := newEntity("meeting_attendee", "meeting_attendees").
		scalar("id", "id", TypeString).
		scalar("meeting_id", "meeting_id", TypeString).
		scalar("person_id", "person_id", TypeString).
		scalar("role", "role", TypeString).
		rel("meeting", "meeting", One, "meeting_id").
		rel("person", "person", One, "person_id")

	reminder := newEntity("reminder", "reminders").
		scalar("id", "id", TypeString).
		scalar("title", "title", TypeString).
		scalar("message", "message", TypeString).
		scalar("due_at", "due_at", TypeTimestamp).
		scalar("frequency", "frequency", TypeEnum).
		scalar("day_of_week", "day_of_week", TypeInteger).
		scalar("day_of_month", "day_of_month", TypeInteger).
		scalar("completed_at", "completed_at", TypeTimestamp).
		scalar("created_at", "created_at", TypeTimestamp)

	note := newEntity("note", "notes").
		scalar("id", "id", TypeString).
		scalar("title", "title", TypeString).
		scalar("content", "content", TypeString).
		scalar("note_date", "note_date", TypeDate).
		scalar("privacy_level", "privacy_level", TypeEnum).
		scalar("tags", "tags", TypeStringArray).
		scalar("created_at", "created_at", TypeTimestamp)

	actionItem := newEntity("action_item", "action_items").
		scalar("id", "id", TypeString).
		scalar("description", "description", TypeString).
		scalar("status", "status", TypeEnum).
		scalar("priority", "priority", TypeInteger).
		scalar("project_id", "project_id", TypeString).
		scalar("due_date", "due_date", TypeDate).
		scalar("tags", "tags", TypeStringArray).
		scalar("created_at", "created_at", TypeTimestamp).
		rel("project", "project", One, "project_id")

	bookmark := newEntity("bookmark", "bookmarks").
		scalar("id", "id", TypeString).
		scalar("url", "url", TypeString).
		scalar("title", "title", TypeString).
		scalar("description", "description", TypeString).
		scalar("tags", "tags", TypeStringArray).
		scalar("created_at", "created_at", TypeTimestamp)

	return newRegistry(
		workSession, meeting, person, project, client, employer,
		reminder, note, actionItem, bookmark, attendee,
	)
}
