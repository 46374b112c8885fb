package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfandino/daybook/internal/nlparse"
	"github.com/mfandino/daybook/internal/query"
)

// dateField maps each searchable entity to the date field its range
// filters apply to, and textField to the field its residual search text
// matches against.
var (
	searchableEntities = []string{"work_session", "meeting", "note", "action_item", "bookmark", "reminder"}

	dateField = map[string]string{
		"work_session": "session_date",
		"meeting":      "meeting_date",
		"note":         "note_date",
		"action_item":  "due_date",
	}
	textField = map[string]string{
		"work_session": "description",
		"meeting":      "title",
		"note":         "content",
		"action_item":  "description",
		"bookmark":     "title",
		"reminder":     "title",
		"person":       "full_name",
		"project":      "name",
		"client":       "name",
		"employer":     "name",
	}
	privacyAware = map[string]bool{
		"work_session": true,
		"meeting":      true,
		"note":         true,
	}
)

// SearchTool handles the search MCP tool: a natural-language query is
// parsed into entity types, date ranges, privacy levels, and residual
// search text, then run through the structured query engine.
type SearchTool struct {
	engine       *query.Engine
	defaultLimit int
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(engine *query.Engine, defaultLimit int) *SearchTool {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &SearchTool{engine: engine, defaultLimit: defaultLimit}
}

// Definition returns the MCP tool definition for search.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription(
			"Search the daybook with a natural-language query, e.g. "+
				"'show me work sessions from last week' or 'find private notes about billing'. "+
				"Recognizes entity types, relative date phrases (today, yesterday, this week, "+
				"last month, ...), privacy levels, and free-text keywords.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language search query"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max rows per entity type"),
		),
	)
}

// searchResponse is the tool output: what the parser understood plus the
// per-entity results.
type searchResponse struct {
	Interpreted nlparse.ParsedQuery    `json:"interpreted"`
	Results     map[string][]query.Row `json:"results"`
	Counts      map[string]int         `json:"counts"`
}

// Handle processes the search tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("query", "")
	if text == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	limit := intArg(req, "limit", t.defaultLimit)

	parsed := nlparse.Parse(text)

	entities := parsed.EntityTypes
	if entities == nil {
		entities = searchableEntities
	}

	resp := searchResponse{
		Interpreted: parsed,
		Results:     map[string][]query.Row{},
		Counts:      map[string]int{},
	}

	for _, entity := range entities {
		filters := t.buildFilters(entity, parsed)
		res, err := t.engine.Query(ctx, query.Request{
			EntityType: entity,
			Filters:    filters,
			Limit:      limit,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search %s: %v", entity, err)), nil
		}
		resp.Results[entity] = res.Results
		resp.Counts[entity] = res.TotalCount
	}

	return jsonResult(resp)
}

// buildFilters translates the parsed query into engine filters for one
// entity type. Date ranges bind to the entity's own date field; entities
// without one are left unconstrained by dates. A privacy filter is only
// emitted when exactly one level was named, since filters AND together.
func (t *SearchTool) buildFilters(entity string, parsed nlparse.ParsedQuery) []query.Filter {
	var filters []query.Filter

	if df, ok := dateField[entity]; ok {
		if parsed.StartDate != nil {
			filters = append(filters, query.Filter{
				Field: df, Operator: query.OpGTE, Value: parsed.StartDate.Format("2006-01-02"),
			})
		}
		if parsed.EndDate != nil {
			filters = append(filters, query.Filter{
				Field: df, Operator: query.OpLTE, Value: parsed.EndDate.Format("2006-01-02"),
			})
		}
	}

	if privacyAware[entity] && len(parsed.PrivacyLevels) == 1 {
		filters = append(filters, query.Filter{
			Field: "privacy_level", Operator: query.OpEQ, Value: parsed.PrivacyLevels[0],
		})
	}

	if parsed.SearchText != "" {
		if tf, ok := textField[entity]; ok {
			filters = append(filters, query.Filter{
				Field: tf, Operator: query.OpContains, Value: parsed.SearchText,
			})
		}
	}

	return filters
}
