// Package resources implements the MCP resource handlers for the
// daybook.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (daybook://...) following MCP
// conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfandino/daybook/internal/query"
)

// Handler serves the daybook resource endpoints.
type Handler struct {
	engine *query.Engine
}

// NewHandler creates a resource Handler.
func NewHandler(engine *query.Engine) *Handler {
	return &Handler{engine: engine}
}

// StatsResource returns the MCP resource definition for daybook stats.
func (h *Handler) StatsResource() mcp.Resource {
	return mcp.NewResource(
		"daybook://stats",
		"Daybook Statistics",
		mcp.WithResourceDescription("Record counts per entity type, pending reminders, and open action items"),
		mcp.WithMIMEType("application/json"),
	)
}

// stats is the daybook://stats payload.
type stats struct {
	GeneratedAt      string           `json:"generated_at"`
	Counts           map[string]int64 `json:"counts"`
	PendingReminders int64            `json:"pending_reminders"`
	OpenActionItems  int64            `json:"open_action_items"`
}

// HandleStats counts every entity type through the query engine and
// returns the result as JSON.
func (h *Handler) HandleStats(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	out := stats{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Counts:      map[string]int64{},
	}

	for _, entity := range h.engine.Registry().EntityNames() {
		n, err := h.count(ctx, entity, nil)
		if err != nil {
			return nil, fmt.Errorf("resources: count %s: %w", entity, err)
		}
		out.Counts[entity] = n
	}

	var err error
	out.PendingReminders, err = h.count(ctx, "reminder", []query.Filter{
		{Field: "completed_at", Operator: query.OpIsNull},
	})
	if err != nil {
		return nil, fmt.Errorf("resources: count pending reminders: %w", err)
	}
	out.OpenActionItems, err = h.count(ctx, "action_item", []query.Filter{
		{Field: "status", Operator: query.OpEQ, Value: "open"},
	})
	if err != nil {
		return nil, fmt.Errorf("resources: count open action items: %w", err)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("resources: marshal stats: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *Handler) count(ctx context.Context, entity string, filters []query.Filter) (int64, error) {
	res, err := h.engine.Query(ctx, query.Request{
		EntityType:  entity,
		Filters:     filters,
		Aggregation: &query.Aggregation{Function: query.AggCount},
	})
	if err != nil {
		return 0, err
	}
	n, ok := res.Aggregation.Result.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected count type %T", res.Aggregation.Result)
	}
	return n, nil
}
