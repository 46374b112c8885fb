package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfandino/daybook/internal/store"
)

// RecordMeetingTool handles the record_meeting MCP tool.
type RecordMeetingTool struct {
	store *store.Store
}

// NewRecordMeetingTool creates a RecordMeetingTool.
func NewRecordMeetingTool(s *store.Store) *RecordMeetingTool {
	return &RecordMeetingTool{store: s}
}

// Definition returns the MCP tool definition for record_meeting.
func (t *RecordMeetingTool) Definition() mcp.Tool {
	return mcp.NewTool("record_meeting",
		mcp.WithDescription(
			"Record a meeting with its date, agenda, and attendees. "+
				"Attendees are person IDs; add people first with add_person.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Meeting title"),
		),
		mcp.WithString("meeting_date",
			mcp.Required(),
			mcp.Description("Date of the meeting, YYYY-MM-DD"),
		),
		mcp.WithString("agenda",
			mcp.Description("Agenda or summary"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project this meeting belongs to"),
		),
		mcp.WithString("attendee_ids",
			mcp.Description("Comma-separated person IDs"),
		),
		mcp.WithString("privacy_level",
			mcp.Description("public (default), private, or confidential"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)
}

// Handle processes the record_meeting tool call.
func (t *RecordMeetingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := t.store.AddMeeting(store.AddMeetingParams{
		Title:        req.GetString("title", ""),
		MeetingDate:  req.GetString("meeting_date", ""),
		Agenda:       req.GetString("agenda", ""),
		ProjectID:    req.GetString("project_id", ""),
		AttendeeIDs:  splitList(req.GetString("attendee_ids", "")),
		PrivacyLevel: req.GetString("privacy_level", ""),
		Tags:         splitList(req.GetString("tags", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(m)
}

// AddAttendeeTool handles the add_attendee MCP tool.
type AddAttendeeTool struct {
	store *store.Store
}

// NewAddAttendeeTool creates an AddAttendeeTool.
func NewAddAttendeeTool(s *store.Store) *AddAttendeeTool {
	return &AddAttendeeTool{store: s}
}

// Definition returns the MCP tool definition for add_attendee.
func (t *AddAttendeeTool) Definition() mcp.Tool {
	return mcp.NewTool("add_attendee",
		mcp.WithDescription("Add a person to an existing meeting, optionally with a role."),
		mcp.WithString("meeting_id",
			mcp.Required(),
			mcp.Description("Meeting to add the attendee to"),
		),
		mcp.WithString("person_id",
			mcp.Required(),
			mcp.Description("Person to add"),
		),
		mcp.WithString("role",
			mcp.Description("Role in the meeting, e.g. organizer, engineer"),
		),
	)
}

// Handle processes the add_attendee tool call.
func (t *AddAttendeeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingID := req.GetString("meeting_id", "")
	personID := req.GetString("person_id", "")
	if meetingID == "" || personID == "" {
		return mcp.NewToolResultError("'meeting_id' and 'person_id' are required"), nil
	}

	a, err := t.store.AddAttendee(meetingID, personID, req.GetString("role", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(a)
}
