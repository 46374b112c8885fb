package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfandino/daybook/internal/recurrence"
	"github.com/mfandino/daybook/internal/store"
)

// AddReminderTool handles the add_reminder MCP tool.
type AddReminderTool struct {
	store *store.Store
}

// NewAddReminderTool creates an AddReminderTool.
func NewAddReminderTool(s *store.Store) *AddReminderTool {
	return &AddReminderTool{store: s}
}

// Definition returns the MCP tool definition for add_reminder.
func (t *AddReminderTool) Definition() mcp.Tool {
	return mcp.NewTool("add_reminder",
		mcp.WithDescription(
			"Schedule a reminder. Give a frequency to make it recurring: completing a "+
				"recurring reminder automatically schedules the next occurrence.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("What to be reminded of"),
		),
		mcp.WithString("due_at",
			mcp.Required(),
			mcp.Description("When it is due, RFC 3339 (e.g. 2024-06-01T09:00:00Z)"),
		),
		mcp.WithString("message",
			mcp.Description("Longer reminder text"),
		),
		mcp.WithString("frequency",
			mcp.Description("Recurrence: daily, weekly, or monthly. Omit for one-shot."),
		),
		mcp.WithNumber("day_of_week",
			mcp.Description("For weekly recurrence: 0 (Sunday) through 6 (Saturday)"),
		),
		mcp.WithNumber("day_of_month",
			mcp.Description("For monthly recurrence: 1-31, clamped to shorter months"),
		),
	)
}

// Handle processes the add_reminder tool call.
func (t *AddReminderTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := store.AddReminderParams{
		Title:   req.GetString("title", ""),
		Message: req.GetString("message", ""),
		DueAt:   req.GetString("due_at", ""),
	}

	if freq := req.GetString("frequency", ""); freq != "" {
		rule := &recurrence.Rule{Frequency: recurrence.Frequency(freq)}
		if _, ok := req.GetArguments()["day_of_week"]; ok {
			d := intArg(req, "day_of_week", 0)
			rule.DayOfWeek = &d
		}
		if _, ok := req.GetArguments()["day_of_month"]; ok {
			d := intArg(req, "day_of_month", 0)
			rule.DayOfMonth = &d
		}
		params.Recurrence = rule
	}

	r, err := t.store.AddReminder(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(r)
}

// CompleteReminderTool handles the complete_reminder MCP tool.
type CompleteReminderTool struct {
	store *store.Store
}

// NewCompleteReminderTool creates a CompleteReminderTool.
func NewCompleteReminderTool(s *store.Store) *CompleteReminderTool {
	return &CompleteReminderTool{store: s}
}

// Definition returns the MCP tool definition for complete_reminder.
func (t *CompleteReminderTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_reminder",
		mcp.WithDescription(
			"Mark a reminder as done. For recurring reminders this also schedules "+
				"the next occurrence and returns it.",
		),
		mcp.WithString("reminder_id",
			mcp.Required(),
			mcp.Description("Reminder to complete"),
		),
	)
}

// Handle processes the complete_reminder tool call.
func (t *CompleteReminderTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("reminder_id", "")
	if id == "" {
		return mcp.NewToolResultError("'reminder_id' is required"), nil
	}

	next, err := t.store.CompleteReminder(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if next == nil {
		return mcp.NewToolResultText("Reminder completed."), nil
	}
	return jsonResult(next)
}

// DueRemindersTool handles the due_reminders MCP tool.
type DueRemindersTool struct {
	store *store.Store
}

// NewDueRemindersTool creates a DueRemindersTool.
func NewDueRemindersTool(s *store.Store) *DueRemindersTool {
	return &DueRemindersTool{store: s}
}

// Definition returns the MCP tool definition for due_reminders.
func (t *DueRemindersTool) Definition() mcp.Tool {
	return mcp.NewTool("due_reminders",
		mcp.WithDescription("List reminders that are due and not yet completed."),
		mcp.WithString("as_of",
			mcp.Description("Check against this time instead of now, RFC 3339"),
		),
	)
}

// Handle processes the due_reminders tool call.
func (t *DueRemindersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asOf := time.Now().UTC()
	if raw := req.GetString("as_of", ""); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid as_of %q: %v", raw, err)), nil
		}
		asOf = ts.UTC()
	}

	due, err := t.store.DueReminders(asOf)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(due) == 0 {
		return mcp.NewToolResultText("Nothing due."), nil
	}
	return jsonResult(due)
}
