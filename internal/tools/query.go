package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfandino/daybook/internal/query"
)

// QueryTool handles the query_records MCP tool: structured queries with
// filters and optional aggregation.
type QueryTool struct {
	engine       *query.Engine
	defaultLimit int
}

// NewQueryTool creates a QueryTool.
func NewQueryTool(engine *query.Engine, defaultLimit int) *QueryTool {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &QueryTool{engine: engine, defaultLimit: defaultLimit}
}

// Definition returns the MCP tool definition for query_records.
func (t *QueryTool) Definition() mcp.Tool {
	entities := strings.Join(t.engine.Registry().EntityNames(), ", ")
	return mcp.NewTool("query_records",
		mcp.WithDescription(
			"Run a structured query against the daybook. Filters combine with AND and may "+
				"traverse relationships with dotted paths (e.g. project.name, attendees.person.full_name). "+
				"Add an aggregation to compute sum, count, or avg instead of returning rows.",
		),
		mcp.WithString("entity_type",
			mcp.Required(),
			mcp.Description("Entity to query: "+entities),
		),
		mcp.WithString("filters",
			mcp.Description(`JSON array of filters, e.g. [{"field":"project.name","operator":"eq","value":"Alpha"}]. `+
				`Operators: eq, gt, gte, lt, lte, contains, has_tag, is_null, is_not_null.`),
		),
		mcp.WithString("aggregation",
			mcp.Description(`JSON aggregation spec, e.g. {"function":"sum","field":"duration_hours","group_by":["project.name"]}. `+
				`Functions: sum, count, avg. Counts are of matching base records, not related rows.`),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max rows to return (ignored for aggregations)"),
		),
	)
}

// Handle processes the query_records tool call.
func (t *QueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entityType := req.GetString("entity_type", "")
	if entityType == "" {
		return mcp.NewToolResultError("'entity_type' is required"), nil
	}

	qr := query.Request{
		EntityType: entityType,
		Limit:      intArg(req, "limit", t.defaultLimit),
	}

	if raw := req.GetString("filters", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &qr.Filters); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid filters JSON: %v", err)), nil
		}
	}
	if raw := req.GetString("aggregation", ""); raw != "" {
		var agg query.Aggregation
		if err := json.Unmarshal([]byte(raw), &agg); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid aggregation JSON: %v", err)), nil
		}
		qr.Aggregation = &agg
	}

	res, err := t.engine.Query(ctx, qr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}
