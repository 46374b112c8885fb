package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AddWorkSessionParams holds the input for logging a work session.
type AddWorkSessionParams struct {
	ProjectID     string   `json:"project_id,omitempty"`
	Description   string   `json:"description"`
	DurationHours string   `json:"duration_hours"`
	SessionDate   string   `json:"session_date"`
	PrivacyLevel  string   `json:"privacy_level,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	OnBehalfOfID  string   `json:"on_behalf_of,omitempty"`
}

// AddWorkSession validates and persists a work session. The duration is
// kept as its exact decimal text, never a float.
func (s *Store) AddWorkSession(p AddWorkSessionParams) (*WorkSession, error) {
	if p.Description == "" {
		return nil, fmt.Errorf("store: work session requires a description")
	}
	dur, err := decimal.NewFromString(p.DurationHours)
	if err != nil {
		return nil, fmt.Errorf("store: invalid duration %q: %w", p.DurationHours, err)
	}
	if dur.IsNegative() {
		return nil, fmt.Errorf("store: duration must not be negative")
	}
	if _, err := time.Parse("2006-01-02", p.SessionDate); err != nil {
		return nil, fmt.Errorf("store: invalid session date %q: %w", p.SessionDate, err)
	}
	privacy := p.PrivacyLevel
	if privacy == "" {
		privacy = "public"
	}

	id := newID()
	createdAt := nowRFC3339()
	_, err = s.db.Exec(
		`INSERT INTO work_sessions
		   (id, project_id, description, duration_hours, session_date, privacy_level, tags, on_behalf_of_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, nullableString(p.ProjectID), p.Description, p.DurationHours, p.SessionDate,
		privacy, tagsJSON(p.Tags), nullableString(p.OnBehalfOfID), createdAt,
	)
	if err != nil {
		return nil, err
	}
	return s.GetWorkSession(id)
}

// GetWorkSession retrieves a work session by ID.
func (s *Store) GetWorkSession(id string) (*WorkSession, error) {
	row := s.db.QueryRow(
		`SELECT id, project_id, description, duration_hours, session_date, privacy_level, tags, on_behalf_of_id, created_at
		 FROM work_sessions WHERE id = ?`, id,
	)
	return scanWorkSession(row)
}

// ListWorkSessions returns sessions newest-first.
func (s *Store) ListWorkSessions(limit int) ([]WorkSession, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, project_id, description, duration_hours, session_date, privacy_level, tags, on_behalf_of_id, created_at
		 FROM work_sessions ORDER BY session_date DESC, created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []WorkSession
	for rows.Next() {
		ws, err := scanWorkSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ws)
	}
	return out, rows.Err()
}

// DeleteWorkSession removes a work session.
func (s *Store) DeleteWorkSession(id string) error {
	res, err := s.db.Exec(`DELETE FROM work_sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: work session %s not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkSession(row scanner) (*WorkSession, error) {
	var (
		ws              WorkSession
		projectID       sql.NullString
		tags            sql.NullString
		onBehalfOfID    sql.NullString
	)
	if err := row.Scan(&ws.ID, &projectID, &ws.Description, &ws.DurationHours, &ws.SessionDate,
		&ws.PrivacyLevel, &tags, &onBehalfOfID, &ws.CreatedAt); err != nil {
		return nil, err
	}
	ws.ProjectID = strp(projectID)
	ws.Tags = scanTags(tags)
	ws.OnBehalfOfID = strp(onBehalfOfID)
	return &ws, nil
}
