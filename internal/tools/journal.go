package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfandino/daybook/internal/store"
)

// AddNoteTool handles the add_note MCP tool.
type AddNoteTool struct {
	store *store.Store
}

// NewAddNoteTool creates an AddNoteTool.
func NewAddNoteTool(s *store.Store) *AddNoteTool {
	return &AddNoteTool{store: s}
}

// Definition returns the MCP tool definition for add_note.
func (t *AddNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("add_note",
		mcp.WithDescription("Save a dated note. The date defaults to today."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Note body"),
		),
		mcp.WithString("note_date",
			mcp.Description("Date of the note, YYYY-MM-DD (default: today)"),
		),
		mcp.WithString("privacy_level",
			mcp.Description("public (default), private, or confidential"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)
}

// Handle processes the add_note tool call.
func (t *AddNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := t.store.AddNote(store.AddNoteParams{
		Title:        req.GetString("title", ""),
		Content:      req.GetString("content", ""),
		NoteDate:     req.GetString("note_date", ""),
		PrivacyLevel: req.GetString("privacy_level", ""),
		Tags:         splitList(req.GetString("tags", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(n)
}

// AddBookmarkTool handles the add_bookmark MCP tool.
type AddBookmarkTool struct {
	store *store.Store
}

// NewAddBookmarkTool creates an AddBookmarkTool.
func NewAddBookmarkTool(s *store.Store) *AddBookmarkTool {
	return &AddBookmarkTool{store: s}
}

// Definition returns the MCP tool definition for add_bookmark.
func (t *AddBookmarkTool) Definition() mcp.Tool {
	return mcp.NewTool("add_bookmark",
		mcp.WithDescription("Save a bookmark with optional title, description, and tags."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to save"),
		),
		mcp.WithString("title",
			mcp.Description("Bookmark title"),
		),
		mcp.WithString("description",
			mcp.Description("Why this is worth keeping"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)
}

// Handle processes the add_bookmark tool call.
func (t *AddBookmarkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := t.store.AddBookmark(store.AddBookmarkParams{
		URL:         req.GetString("url", ""),
		Title:       req.GetString("title", ""),
		Description: req.GetString("description", ""),
		Tags:        splitList(req.GetString("tags", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(b)
}

// AddActionItemTool handles the add_action_item MCP tool.
type AddActionItemTool struct {
	store *store.Store
}

// NewAddActionItemTool creates an AddActionItemTool.
func NewAddActionItemTool(s *store.Store) *AddActionItemTool {
	return &AddActionItemTool{store: s}
}

// Definition returns the MCP tool definition for add_action_item.
func (t *AddActionItemTool) Definition() mcp.Tool {
	return mcp.NewTool("add_action_item",
		mcp.WithDescription("Add an action item (todo). New items start open."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What needs to be done"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date, YYYY-MM-DD"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority, lower is more urgent"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project this item belongs to"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)
}

// Handle processes the add_action_item tool call.
func (t *AddActionItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := store.AddActionItemParams{
		Description: req.GetString("description", ""),
		DueDate:     req.GetString("due_date", ""),
		ProjectID:   req.GetString("project_id", ""),
		Tags:        splitList(req.GetString("tags", "")),
	}
	if _, ok := req.GetArguments()["priority"]; ok {
		p := intArg(req, "priority", 0)
		params.Priority = &p
	}

	ai, err := t.store.AddActionItem(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ai)
}

// SetActionItemStatusTool handles the set_action_item_status MCP tool.
type SetActionItemStatusTool struct {
	store *store.Store
}

// NewSetActionItemStatusTool creates a SetActionItemStatusTool.
func NewSetActionItemStatusTool(s *store.Store) *SetActionItemStatusTool {
	return &SetActionItemStatusTool{store: s}
}

// Definition returns the MCP tool definition for set_action_item_status.
func (t *SetActionItemStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("set_action_item_status",
		mcp.WithDescription("Change an action item's status."),
		mcp.WithString("action_item_id",
			mcp.Required(),
			mcp.Description("Action item to update"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status: open, in_progress, done, or dropped"),
		),
	)
}

// Handle processes the set_action_item_status tool call.
func (t *SetActionItemStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("action_item_id", "")
	status := req.GetString("status", "")
	if id == "" || status == "" {
		return mcp.NewToolResultError("'action_item_id' and 'status' are required"), nil
	}
	if err := t.store.SetActionItemStatus(id, status); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ai, err := t.store.GetActionItem(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ai)
}
