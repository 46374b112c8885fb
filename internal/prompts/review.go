// Package prompts implements the MCP prompt handlers for the daybook.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// DailyReviewPrompt handles the daily-review MCP prompt: a guided
// walkthrough of one day's work sessions, meetings, notes, and open
// items.
type DailyReviewPrompt struct{}

// NewDailyReviewPrompt creates a DailyReviewPrompt.
func NewDailyReviewPrompt() *DailyReviewPrompt {
	return &DailyReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *DailyReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("daily-review",
		mcp.WithPromptDescription(
			"Review one day of the daybook: work logged, meetings held, notes taken, "+
				"reminders due, and open action items.",
		),
		mcp.WithArgument("date",
			mcp.ArgumentDescription("Day to review, YYYY-MM-DD. Default: today."),
		),
	)
}

// Handle processes the daily-review prompt request.
func (p *DailyReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	date := time.Now().UTC().Format("2006-01-02")
	if args := req.Params.Arguments; args != nil {
		if d, ok := args["date"]; ok && d != "" {
			date = d
		}
	}

	text := fmt.Sprintf(`Put together a daily review for %s.

1. Use query_records on work_session with a session_date eq %q filter, plus an
   aggregation {"function":"sum","field":"duration_hours"} for the day's total.
2. Use query_records on meeting with a meeting_date eq %q filter.
3. Use query_records on note with a note_date eq %q filter.
4. Call due_reminders to list anything overdue.
5. Use query_records on action_item with a status eq "open" filter.

Then summarize:
- Hours worked, by project if project.name grouping shows more than one.
- Meetings and who attended.
- Notes worth re-reading.
- Anything due or slipping.

Keep it short. If a section is empty, skip it.`, date, date, date, date)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Daily review for %s", date),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}

// WeeklySummaryPrompt handles the weekly-summary MCP prompt.
type WeeklySummaryPrompt struct{}

// NewWeeklySummaryPrompt creates a WeeklySummaryPrompt.
func NewWeeklySummaryPrompt() *WeeklySummaryPrompt {
	return &WeeklySummaryPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *WeeklySummaryPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("weekly-summary",
		mcp.WithPromptDescription(
			"Summarize a week of work: total hours per project, meetings held, and what moved.",
		),
		mcp.WithArgument("start_date",
			mcp.ArgumentDescription("Monday of the week to summarize, YYYY-MM-DD. Default: this week."),
		),
	)
}

// Handle processes the weekly-summary prompt request.
func (p *WeeklySummaryPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	now := time.Now().UTC()
	// Monday of the current week.
	offset := (int(now.Weekday()) + 6) % 7
	start := now.AddDate(0, 0, -offset)
	if args := req.Params.Arguments; args != nil {
		if d, ok := args["start_date"]; ok && d != "" {
			parsed, err := time.Parse("2006-01-02", d)
			if err != nil {
				return nil, fmt.Errorf("prompts: invalid start_date %q: %w", d, err)
			}
			start = parsed
		}
	}
	end := start.AddDate(0, 0, 6)

	startStr := start.Format("2006-01-02")
	endStr := end.Format("2006-01-02")
	text := fmt.Sprintf(`Summarize the week %s to %s.

1. query_records on work_session with session_date gte %q and lte %q, aggregation
   {"function":"sum","field":"duration_hours","group_by":["project.name"]}.
2. query_records on meeting with the same date range on meeting_date.
3. query_records on action_item with status eq "done" for what got finished.

Write a short narrative: where the hours went, what the meetings decided,
and what carried over. Flag any project with less than an hour logged.`,
		startStr, endStr, startStr, endStr)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Weekly summary %s..%s", startStr, endStr),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
