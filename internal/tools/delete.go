package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfandino/daybook/internal/store"
)

// DeleteRecordTool handles the delete_record MCP tool. One tool covers
// all deletable entity types; the store functions carry the per-entity
// semantics (deleting a meeting removes its attendee links too).
type DeleteRecordTool struct {
	store   *store.Store
	deletes map[string]func(id string) error
}

// NewDeleteRecordTool creates a DeleteRecordTool.
func NewDeleteRecordTool(s *store.Store) *DeleteRecordTool {
	return &DeleteRecordTool{
		store: s,
		deletes: map[string]func(string) error{
			"work_session": s.DeleteWorkSession,
			"meeting":      s.DeleteMeeting,
			"person":       s.DeletePerson,
			"reminder":     s.DeleteReminder,
			"note":         s.DeleteNote,
			"action_item":  s.DeleteActionItem,
			"bookmark":     s.DeleteBookmark,
		},
	}
}

// Definition returns the MCP tool definition for delete_record.
func (t *DeleteRecordTool) Definition() mcp.Tool {
	types := make([]string, 0, len(t.deletes))
	for name := range t.deletes {
		types = append(types, name)
	}
	sort.Strings(types)

	return mcp.NewTool("delete_record",
		mcp.WithDescription("Delete a record by entity type and id."),
		mcp.WithString("entity_type",
			mcp.Required(),
			mcp.Description("One of: "+strings.Join(types, ", ")),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Record id"),
		),
	)
}

// Handle processes the delete_record tool call.
func (t *DeleteRecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entityType := req.GetString("entity_type", "")
	id := req.GetString("id", "")
	if entityType == "" || id == "" {
		return mcp.NewToolResultError("'entity_type' and 'id' are required"), nil
	}

	del, ok := t.deletes[entityType]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("cannot delete entity type %q", entityType)), nil
	}
	if err := del(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted %s %s.", entityType, id)), nil
}
