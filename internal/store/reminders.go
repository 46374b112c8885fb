package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mfandino/daybook/internal/recurrence"
)

// AddReminderParams holds the input for scheduling a reminder.
// Recurrence is nil for one-shot reminders.
type AddReminderParams struct {
	Title      string           `json:"title"`
	Message    string           `json:"message,omitempty"`
	DueAt      string           `json:"due_at"`
	Recurrence *recurrence.Rule `json:"recurrence,omitempty"`
}

// AddReminder validates and persists a reminder. Recurrence rules are
// validated here, once, before anything is stored — Next never
// re-validates.
func (s *Store) AddReminder(p AddReminderParams) (*Reminder, error) {
	if p.Title == "" {
		return nil, fmt.Errorf("store: reminder requires a title")
	}
	due, err := time.Parse(time.RFC3339, p.DueAt)
	if err != nil {
		return nil, fmt.Errorf("store: invalid due time %q: %w", p.DueAt, err)
	}
	if p.Recurrence != nil {
		if err := p.Recurrence.Validate(); err != nil {
			return nil, err
		}
	}

	var frequency, dayOfWeek, dayOfMonth any
	if p.Recurrence != nil {
		frequency = string(p.Recurrence.Frequency)
		dayOfWeek = nullableInt(p.Recurrence.DayOfWeek)
		dayOfMonth = nullableInt(p.Recurrence.DayOfMonth)
	}

	id := newID()
	_, err = s.db.Exec(
		`INSERT INTO reminders (id, title, message, due_at, frequency, day_of_week, day_of_month, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, nullableString(p.Message), due.UTC().Format(time.RFC3339),
		frequency, dayOfWeek, dayOfMonth, nowRFC3339(),
	)
	if err != nil {
		return nil, err
	}
	return s.GetReminder(id)
}

// GetReminder retrieves a reminder by ID.
func (s *Store) GetReminder(id string) (*Reminder, error) {
	row := s.db.QueryRow(
		`SELECT id, title, message, due_at, frequency, day_of_week, day_of_month, completed_at, created_at
		 FROM reminders WHERE id = ?`, id,
	)
	return scanReminder(row)
}

// ListReminders returns reminders by due time. When pending is true,
// completed reminders are excluded.
func (s *Store) ListReminders(pending bool, limit int) ([]Reminder, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, title, message, due_at, frequency, day_of_week, day_of_month, completed_at, created_at
	          FROM reminders`
	if pending {
		query += ` WHERE completed_at IS NULL`
	}
	query += ` ORDER BY due_at LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// DueReminders returns uncompleted reminders whose due time is at or
// before asOf.
func (s *Store) DueReminders(asOf time.Time) ([]Reminder, error) {
	rows, err := s.db.Query(
		`SELECT id, title, message, due_at, frequency, day_of_week, day_of_month, completed_at, created_at
		 FROM reminders WHERE completed_at IS NULL AND due_at <= ? ORDER BY due_at`,
		asOf.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// CompleteReminder marks a reminder done. For a recurring reminder the
// completion and the creation of its successor happen in one
// transaction: both happen, or neither. Returns the successor, or nil
// for one-shot reminders.
func (s *Store) CompleteReminder(id string) (*Reminder, error) {
	r, err := s.GetReminder(id)
	if err != nil {
		return nil, err
	}
	if r.CompletedAt != nil {
		return nil, fmt.Errorf("store: reminder %s is already completed", id)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE reminders SET completed_at = ? WHERE id = ?`, nowRFC3339(), id); err != nil {
		return nil, err
	}

	var successorID string
	if rule := r.Rule(); rule != nil {
		due, err := time.Parse(time.RFC3339, r.DueAt)
		if err != nil {
			return nil, fmt.Errorf("store: reminder %s has malformed due time: %w", id, err)
		}
		next := recurrence.Next(due, *rule)

		successorID = newID()
		if _, err := tx.Exec(
			`INSERT INTO reminders (id, title, message, due_at, frequency, day_of_week, day_of_month, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			successorID, r.Title, nullableStrPtr(r.Message), next.UTC().Format(time.RFC3339),
			string(rule.Frequency), nullableInt(rule.DayOfWeek), nullableInt(rule.DayOfMonth), nowRFC3339(),
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if successorID == "" {
		return nil, nil
	}
	return s.GetReminder(successorID)
}

// DeleteReminder removes a reminder.
func (s *Store) DeleteReminder(id string) error {
	res, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: reminder %s not found", id)
	}
	return nil
}

// Rule reconstructs the reminder's recurrence rule, or nil for
// one-shot reminders.
func (r *Reminder) Rule() *recurrence.Rule {
	if r.Frequency == nil {
		return nil
	}
	return &recurrence.Rule{
		Frequency:  recurrence.Frequency(*r.Frequency),
		DayOfWeek:  r.DayOfWeek,
		DayOfMonth: r.DayOfMonth,
	}
}

func scanReminder(row scanner) (*Reminder, error) {
	var (
		r           Reminder
		message     sql.NullString
		frequency   sql.NullString
		dayOfWeek   sql.NullInt64
		dayOfMonth  sql.NullInt64
		completedAt sql.NullString
	)
	if err := row.Scan(&r.ID, &r.Title, &message, &r.DueAt, &frequency, &dayOfWeek, &dayOfMonth, &completedAt, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Message = strp(message)
	r.Frequency = strp(frequency)
	r.DayOfWeek = intp(dayOfWeek)
	r.DayOfMonth = intp(dayOfMonth)
	r.CompletedAt = strp(completedAt)
	return &r, nil
}
