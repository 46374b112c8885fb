package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfandino/daybook/internal/store"
)

// LogWorkTool handles the log_work MCP tool.
type LogWorkTool struct {
	store *store.Store
}

// NewLogWorkTool creates a LogWorkTool.
func NewLogWorkTool(s *store.Store) *LogWorkTool {
	return &LogWorkTool{store: s}
}

// Definition returns the MCP tool definition for log_work.
func (t *LogWorkTool) Definition() mcp.Tool {
	return mcp.NewTool("log_work",
		mcp.WithDescription(
			"Log a work session: what was done, for how long, and when. "+
				"Duration is decimal hours and is stored exactly as given.",
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What was worked on"),
		),
		mcp.WithString("duration_hours",
			mcp.Required(),
			mcp.Description("Hours worked as a decimal, e.g. '1.5'"),
		),
		mcp.WithString("session_date",
			mcp.Required(),
			mcp.Description("Date of the session, YYYY-MM-DD"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project this session belongs to"),
		),
		mcp.WithString("on_behalf_of",
			mcp.Description("Person ID this work was done on behalf of"),
		),
		mcp.WithString("privacy_level",
			mcp.Description("public (default), private, or confidential"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)
}

// Handle processes the log_work tool call.
func (t *LogWorkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, err := t.store.AddWorkSession(store.AddWorkSessionParams{
		Description:   req.GetString("description", ""),
		DurationHours: req.GetString("duration_hours", ""),
		SessionDate:   req.GetString("session_date", ""),
		ProjectID:     req.GetString("project_id", ""),
		OnBehalfOfID:  req.GetString("on_behalf_of", ""),
		PrivacyLevel:  req.GetString("privacy_level", ""),
		Tags:          splitList(req.GetString("tags", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ws)
}
