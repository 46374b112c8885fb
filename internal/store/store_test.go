package store

import (
	"strings"
	"testing"
	"time"

	"github.com/mfandino/daybook/internal/recurrence"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestWorkSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	ws, err := s.AddWorkSession(AddWorkSessionParams{
		Description:   "refactor billing",
		DurationHours: "1.50",
		SessionDate:   "2024-03-14",
		Tags:          []string{"backend", "billing"},
	})
	if err != nil {
		t.Fatalf("AddWorkSession: %v", err)
	}
	if ws.ID == "" {
		t.Fatal("expected a generated id")
	}
	if ws.DurationHours != "1.50" {
		t.Errorf("duration = %q, want exact text %q", ws.DurationHours, "1.50")
	}
	if ws.PrivacyLevel != "public" {
		t.Errorf("privacy = %q, want default public", ws.PrivacyLevel)
	}
	if len(ws.Tags) != 2 || ws.Tags[0] != "backend" {
		t.Errorf("tags = %v", ws.Tags)
	}

	got, err := s.GetWorkSession(ws.ID)
	if err != nil {
		t.Fatalf("GetWorkSession: %v", err)
	}
	if got.Description != "refactor billing" {
		t.Errorf("description = %q", got.Description)
	}

	list, err := s.ListWorkSessions(10)
	if err != nil {
		t.Fatalf("ListWorkSessions: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}

	if err := s.DeleteWorkSession(ws.ID); err != nil {
		t.Fatalf("DeleteWorkSession: %v", err)
	}
	if err := s.DeleteWorkSession(ws.ID); err == nil {
		t.Fatal("expected error deleting missing session")
	}
}

func TestAddWorkSessionValidation(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name   string
		params AddWorkSessionParams
	}{
		{"empty description", AddWorkSessionParams{DurationHours: "1", SessionDate: "2024-01-01"}},
		{"bad duration", AddWorkSessionParams{Description: "x", DurationHours: "1.2.3", SessionDate: "2024-01-01"}},
		{"negative duration", AddWorkSessionParams{Description: "x", DurationHours: "-2", SessionDate: "2024-01-01"}},
		{"bad date", AddWorkSessionParams{Description: "x", DurationHours: "1", SessionDate: "Jan 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddWorkSession(tt.params); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestMeetingWithAttendees(t *testing.T) {
	s := newTestStore(t)

	alice, err := s.AddPerson(AddPersonParams{FullName: "Alice Moran"})
	if err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
	bob, err := s.AddPerson(AddPersonParams{FullName: "Bob Tran"})
	if err != nil {
		t.Fatalf("AddPerson: %v", err)
	}

	m, err := s.AddMeeting(AddMeetingParams{
		Title:       "sprint planning",
		MeetingDate: "2024-03-14",
		AttendeeIDs: []string{alice.ID, bob.ID},
	})
	if err != nil {
		t.Fatalf("AddMeeting: %v", err)
	}

	att, err := s.MeetingAttendees(m.ID)
	if err != nil {
		t.Fatalf("MeetingAttendees: %v", err)
	}
	if len(att) != 2 {
		t.Fatalf("len(attendees) = %d, want 2", len(att))
	}

	if err := s.DeleteMeeting(m.ID); err != nil {
		t.Fatalf("DeleteMeeting: %v", err)
	}
	att, err = s.MeetingAttendees(m.ID)
	if err != nil {
		t.Fatalf("MeetingAttendees after delete: %v", err)
	}
	if len(att) != 0 {
		t.Errorf("attendee links survived meeting delete: %v", att)
	}
}

func TestProjectHierarchy(t *testing.T) {
	s := newTestStore(t)

	emp, err := s.AddEmployer("Acme Corp", "https://acme.example")
	if err != nil {
		t.Fatalf("AddEmployer: %v", err)
	}
	cl, err := s.AddClient(AddClientParams{Name: "Globex", EmployerID: emp.ID})
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	pr, err := s.AddProject(AddProjectParams{Name: "Website Redesign", ClientID: cl.ID})
	if err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	if pr.Status != "active" {
		t.Errorf("status = %q, want default active", pr.Status)
	}

	if err := s.SetProjectStatus(pr.ID, "completed"); err != nil {
		t.Fatalf("SetProjectStatus: %v", err)
	}
	active, err := s.ListProjects("active")
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("len(active) = %d, want 0", len(active))
	}
	completed, err := s.ListProjects("completed")
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(completed) != 1 {
		t.Errorf("len(completed) = %d, want 1", len(completed))
	}
}

func TestAddNoteDefaultsDate(t *testing.T) {
	s := newTestStore(t)

	orig := timeNow
	timeNow = func() time.Time { return time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = orig })

	n, err := s.AddNote(AddNoteParams{Title: "standup", Content: "shipped the thing"})
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if n.NoteDate != "2024-03-14" {
		t.Errorf("note date = %q, want 2024-03-14", n.NoteDate)
	}
}

func TestActionItemStatus(t *testing.T) {
	s := newTestStore(t)

	ai, err := s.AddActionItem(AddActionItemParams{Description: "send invoice", DueDate: "2024-04-01"})
	if err != nil {
		t.Fatalf("AddActionItem: %v", err)
	}
	if ai.Status != "open" {
		t.Errorf("status = %q, want open", ai.Status)
	}

	if err := s.SetActionItemStatus(ai.ID, "done"); err != nil {
		t.Fatalf("SetActionItemStatus: %v", err)
	}
	open, err := s.ListActionItems("open", 10)
	if err != nil {
		t.Fatalf("ListActionItems: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("len(open) = %d, want 0", len(open))
	}
}

func TestBookmarkRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddBookmark(AddBookmarkParams{}); err == nil {
		t.Fatal("expected error for missing url")
	}

	b, err := s.AddBookmark(AddBookmarkParams{
		URL:  "https://go.dev/blog/slices",
		Tags: []string{"go", "reading"},
	})
	if err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}
	got, err := s.GetBookmark(b.ID)
	if err != nil {
		t.Fatalf("GetBookmark: %v", err)
	}
	if got.URL != "https://go.dev/blog/slices" {
		t.Errorf("url = %q", got.URL)
	}
	if len(got.Tags) != 2 {
		t.Errorf("tags = %v", got.Tags)
	}
	if err := s.DeleteBookmark(b.ID); err != nil {
		t.Fatalf("DeleteBookmark: %v", err)
	}
}

func TestCompleteReminderOneShot(t *testing.T) {
	s := newTestStore(t)

	r, err := s.AddReminder(AddReminderParams{
		Title: "renew passport",
		DueAt: "2024-06-01T09:00:00Z",
	})
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	next, err := s.CompleteReminder(r.ID)
	if err != nil {
		t.Fatalf("CompleteReminder: %v", err)
	}
	if next != nil {
		t.Fatalf("one-shot reminder produced successor %v", next)
	}

	got, err := s.GetReminder(r.ID)
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if got.CompletedAt == nil {
		t.Fatal("completed_at not set")
	}

	if _, err := s.CompleteReminder(r.ID); err == nil {
		t.Fatal("expected error completing an already-completed reminder")
	}
}

func TestCompleteReminderRecurringCreatesSuccessor(t *testing.T) {
	s := newTestStore(t)

	day := 31
	r, err := s.AddReminder(AddReminderParams{
		Title: "pay rent",
		DueAt: "2024-01-31T09:00:00Z",
		Recurrence: &recurrence.Rule{
			Frequency:  recurrence.Monthly,
			DayOfMonth: &day,
		},
	})
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	next, err := s.CompleteReminder(r.ID)
	if err != nil {
		t.Fatalf("CompleteReminder: %v", err)
	}
	if next == nil {
		t.Fatal("recurring reminder produced no successor")
	}
	// 2024 is a leap year, so January 31 clamps to February 29.
	if next.DueAt != "2024-02-29T09:00:00Z" {
		t.Errorf("successor due_at = %q, want 2024-02-29T09:00:00Z", next.DueAt)
	}
	if next.CompletedAt != nil {
		t.Error("successor should not be completed")
	}
	if next.Title != "pay rent" {
		t.Errorf("successor title = %q", next.Title)
	}

	pending, err := s.ListReminders(true, 10)
	if err != nil {
		t.Fatalf("ListReminders: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != next.ID {
		t.Errorf("pending = %v, want only the successor", pending)
	}
}

func TestAddReminderRejectsInvalidRecurrence(t *testing.T) {
	s := newTestStore(t)

	day := 9
	_, err := s.AddReminder(AddReminderParams{
		Title: "bad rule",
		DueAt: "2024-06-01T09:00:00Z",
		Recurrence: &recurrence.Rule{
			Frequency: recurrence.Weekly,
			DayOfWeek: &day,
		},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "day_of_week") {
		t.Errorf("err = %v, want a day_of_week complaint", err)
	}
}

func TestDueReminders(t *testing.T) {
	s := newTestStore(t)

	early, err := s.AddReminder(AddReminderParams{Title: "early", DueAt: "2024-06-01T08:00:00Z"})
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if _, err := s.AddReminder(AddReminderParams{Title: "late", DueAt: "2024-06-02T08:00:00Z"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	due, err := s.DueReminders(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DueReminders: %v", err)
	}
	if len(due) != 1 || due[0].ID != early.ID {
		t.Fatalf("due = %v, want only the earlier reminder", due)
	}
}
