// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: it creates the store, the query engine,
// and the reminder scheduler, and injects them into the tools, prompts,
// and resources that depend on them. No business logic lives here —
// only wiring.
package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mfandino/daybook/internal/config"
	"github.com/mfandino/daybook/internal/prompts"
	"github.com/mfandino/daybook/internal/query"
	"github.com/mfandino/daybook/internal/reminders"
	"github.com/mfandino/daybook/internal/resources"
	"github.com/mfandino/daybook/internal/store"
	"github.com/mfandino/daybook/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server bundles the MCP server with the background reminder scheduler.
// The caller runs the scheduler in its own goroutine; ServeStdio owns
// the foreground.
type Server struct {
	MCP       *server.MCPServer
	Scheduler *reminders.Scheduler
}

// New creates and configures the daybook MCP server with all tools,
// prompts, and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the store and must be called on
// shutdown (typically via defer). It is always non-nil.
func New(cfg *config.Config) (*Server, func(), error) {
	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	st, err := store.New(store.Config{DataDir: cfg.DataDir})
	if err != nil {
		return nil, noop, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Warn("store close", "error", err)
		}
	}

	engine := query.NewEngine(st.DB(), query.DefaultRegistry())

	scheduler, err := reminders.New(reminders.Config{
		Store:    st,
		Notifier: reminders.NewLogNotifier(log),
		Interval: cfg.ReminderCheckInterval(),
		Logger:   log,
	})
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("creating reminder scheduler: %w", err)
	}

	s := server.NewMCPServer(
		"daybook",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	// --- Query tools ---

	queryTool := tools.NewQueryTool(engine, cfg.DefaultQueryLimit)
	s.AddTool(queryTool.Definition(), queryTool.Handle)

	searchTool := tools.NewSearchTool(engine, cfg.DefaultQueryLimit)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	// --- Record tools ---

	logWork := tools.NewLogWorkTool(st)
	s.AddTool(logWork.Definition(), logWork.Handle)

	recordMeeting := tools.NewRecordMeetingTool(st)
	s.AddTool(recordMeeting.Definition(), recordMeeting.Handle)

	addAttendee := tools.NewAddAttendeeTool(st)
	s.AddTool(addAttendee.Definition(), addAttendee.Handle)

	addPerson := tools.NewAddPersonTool(st)
	s.AddTool(addPerson.Definition(), addPerson.Handle)

	addEmployer := tools.NewAddEmployerTool(st)
	s.AddTool(addEmployer.Definition(), addEmployer.Handle)

	addClient := tools.NewAddClientTool(st)
	s.AddTool(addClient.Definition(), addClient.Handle)

	addProject := tools.NewAddProjectTool(st)
	s.AddTool(addProject.Definition(), addProject.Handle)

	setProjectStatus := tools.NewSetProjectStatusTool(st)
	s.AddTool(setProjectStatus.Definition(), setProjectStatus.Handle)

	addNote := tools.NewAddNoteTool(st)
	s.AddTool(addNote.Definition(), addNote.Handle)

	addBookmark := tools.NewAddBookmarkTool(st)
	s.AddTool(addBookmark.Definition(), addBookmark.Handle)

	addActionItem := tools.NewAddActionItemTool(st)
	s.AddTool(addActionItem.Definition(), addActionItem.Handle)

	setActionItemStatus := tools.NewSetActionItemStatusTool(st)
	s.AddTool(setActionItemStatus.Definition(), setActionItemStatus.Handle)

	deleteRecord := tools.NewDeleteRecordTool(st)
	s.AddTool(deleteRecord.Definition(), deleteRecord.Handle)

	// --- Reminder tools ---

	addReminder := tools.NewAddReminderTool(st)
	s.AddTool(addReminder.Definition(), addReminder.Handle)

	completeReminder := tools.NewCompleteReminderTool(st)
	s.AddTool(completeReminder.Definition(), completeReminder.Handle)

	dueReminders := tools.NewDueRemindersTool(st)
	s.AddTool(dueReminders.Definition(), dueReminders.Handle)

	// --- Prompts ---

	dailyReview := prompts.NewDailyReviewPrompt()
	s.AddPrompt(dailyReview.Definition(), dailyReview.Handle)

	weeklySummary := prompts.NewWeeklySummaryPrompt()
	s.AddPrompt(weeklySummary.Definition(), weeklySummary.Handle)

	// --- Resources ---

	resourceHandler := resources.NewHandler(engine)
	s.AddResource(resourceHandler.StatsResource(), resourceHandler.HandleStats)

	return &Server{MCP: s, Scheduler: scheduler}, cleanup, nil
}

// noop is a no-op cleanup function used when construction fails before
// the store is open.
func noop() {}

// newLogger builds the stderr logger. Stdout belongs to the MCP stdio
// transport and must stay clean.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

const serverInstructions = `Daybook is a personal productivity data server: work sessions,
meetings, people, projects, reminders, notes, action items, and bookmarks.

Recording:
- log_work, record_meeting, add_person, add_employer, add_client, add_project,
  add_note, add_bookmark, add_action_item, add_reminder.
- Durations are decimal hours ("1.5") and are stored exactly as given.
- Dates are YYYY-MM-DD; timestamps are RFC 3339.

Querying:
- query_records is the precise interface: filters as JSON, dotted paths
  traverse relationships (project.name, attendees.person.full_name), and
  aggregations compute sum/count/avg with optional group_by.
- search takes plain English ("work sessions from last week about billing")
  and runs the same engine underneath.
- Prefer query_records when you know exactly what you want; use search for
  vague requests.

Reminders:
- Recurring reminders (daily/weekly/monthly) schedule their next occurrence
  when completed. Monthly recurrence clamps to shorter months.
- due_reminders lists what needs attention; complete_reminder finishes one.

The daybook://stats resource gives record counts for orientation.`
