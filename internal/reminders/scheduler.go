// Package reminders delivers due reminders in the background. The
// scheduler polls the store on a fixed interval and hands each newly due
// reminder to a Notifier exactly once.
package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfandino/daybook/internal/store"
)

var timeNow = time.Now

// Notifier delivers one reminder to the user.
type Notifier interface {
	Send(title, message string) error
}

// LogNotifier writes reminders to the structured log. Stdout carries the
// MCP protocol, so the log (and therefore every notification) goes to
// stderr.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger uses slog.Default.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(title, message string) error {
	n.log.Info("reminder due", "title", title, "message", message)
	return nil
}

// Config holds the scheduler dependencies.
type Config struct {
	Store    *store.Store
	Notifier Notifier
	Interval time.Duration // default: 1m
	Logger   *slog.Logger
}

// Scheduler polls for due reminders and notifies once per reminder.
// A reminder stays pending until it is explicitly completed, so the
// scheduler remembers what it already delivered and never re-sends
// within one process lifetime.
type Scheduler struct {
	store    *store.Store
	notifier Notifier
	interval time.Duration
	log      *slog.Logger

	delivered map[string]bool
}

// New creates a Scheduler.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("reminders: store is required")
	}
	if cfg.Notifier == nil {
		return nil, fmt.Errorf("reminders: notifier is required")
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		store:     cfg.Store,
		notifier:  cfg.Notifier,
		interval:  interval,
		log:       log,
		delivered: map[string]bool{},
	}, nil
}

// Start runs the polling loop. It checks once immediately, then on every
// tick, and blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.checkDue()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.checkDue()
		}
	}
}

// checkDue fetches everything due and notifies what hasn't been
// delivered yet. A notification failure is logged and skipped so one
// broken delivery never blocks the rest; the reminder will be retried
// on the next tick.
func (s *Scheduler) checkDue() {
	due, err := s.store.DueReminders(timeNow().UTC())
	if err != nil {
		s.log.Error("reminder check failed", "error", err)
		return
	}

	for _, r := range due {
		if s.delivered[r.ID] {
			continue
		}
		message := ""
		if r.Message != nil {
			message = *r.Message
		}
		if err := s.notifier.Send(r.Title, message); err != nil {
			s.log.Error("reminder notification failed", "id", r.ID, "title", r.Title, "error", err)
			continue
		}
		s.delivered[r.ID] = true
	}
}
