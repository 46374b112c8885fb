package reminders

import (
	"errors"
	"testing"
	"time"

	"github.com/mfandino/daybook/internal/store"
)

type fakeNotifier struct {
	sent []string
	fail map[string]bool
}

func (f *fakeNotifier) Send(title, message string) error {
	if f.fail[title] {
		return errors.New("delivery down")
	}
	f.sent = append(f.sent, title)
	return nil
}

func newTestScheduler(t *testing.T, n Notifier) (*Scheduler, *store.Store) {
	t.Helper()
	st, err := store.New(store.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	s, err := New(Config{Store: st, Notifier: n})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, st
}

func freeze(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func TestNew_RequiresDependencies(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing store")
	}
	st, err := store.New(store.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	defer func() { _ = st.Close() }()
	if _, err := New(Config{Store: st}); err == nil {
		t.Fatal("expected error for missing notifier")
	}
}

func TestCheckDue_NotifiesOnlyDueReminders(t *testing.T) {
	n := &fakeNotifier{}
	s, st := newTestScheduler(t, n)
	freeze(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	if _, err := st.AddReminder(store.AddReminderParams{Title: "due", DueAt: "2024-06-01T08:00:00Z"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if _, err := st.AddReminder(store.AddReminderParams{Title: "future", DueAt: "2024-06-02T08:00:00Z"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	s.checkDue()
	if len(n.sent) != 1 || n.sent[0] != "due" {
		t.Fatalf("sent = %v, want [due]", n.sent)
	}
}

func TestCheckDue_DeliversOnce(t *testing.T) {
	n := &fakeNotifier{}
	s, st := newTestScheduler(t, n)
	freeze(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	if _, err := st.AddReminder(store.AddReminderParams{Title: "standup", DueAt: "2024-06-01T08:00:00Z"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	s.checkDue()
	s.checkDue()
	if len(n.sent) != 1 {
		t.Fatalf("sent %d times, want 1", len(n.sent))
	}
}

func TestCheckDue_FailureDoesNotBlockOthers(t *testing.T) {
	n := &fakeNotifier{fail: map[string]bool{"broken": true}}
	s, st := newTestScheduler(t, n)
	freeze(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	if _, err := st.AddReminder(store.AddReminderParams{Title: "broken", DueAt: "2024-06-01T07:00:00Z"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if _, err := st.AddReminder(store.AddReminderParams{Title: "fine", DueAt: "2024-06-01T08:00:00Z"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	s.checkDue()
	if len(n.sent) != 1 || n.sent[0] != "fine" {
		t.Fatalf("sent = %v, want [fine]", n.sent)
	}

	// The failed delivery is retried on the next check.
	n.fail = nil
	s.checkDue()
	if len(n.sent) != 2 {
		t.Fatalf("sent = %v, want broken retried", n.sent)
	}
}
