package store

import (
	"database/sql"
	"fmt"
	"time"
)

// AddNoteParams holds the input for saving a note.
type AddNoteParams struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	NoteDate     string   `json:"note_date,omitempty"`
	PrivacyLevel string   `json:"privacy_level,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// AddNote persists a note. NoteDate defaults to today.
func (s *Store) AddNote(p AddNoteParams) (*Note, error) {
	if p.Title == "" {
		return nil, fmt.Errorf("store: note requires a title")
	}
	if p.Content == "" {
		return nil, fmt.Errorf("store: note requires content")
	}
	noteDate := p.NoteDate
	if noteDate == "" {
		noteDate = timeNow().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", noteDate); err != nil {
		return nil, fmt.Errorf("store: invalid note date %q: %w", noteDate, err)
	}
	privacy := p.PrivacyLevel
	if privacy == "" {
		privacy = "public"
	}

	id := newID()
	_, err := s.db.Exec(
		`INSERT INTO notes (id, title, content, note_date, privacy_level, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, p.Content, noteDate, privacy, tagsJSON(p.Tags), nowRFC3339(),
	)
	if err != nil {
		return nil, err
	}
	return s.GetNote(id)
}

// GetNote retrieves a note by ID.
func (s *Store) GetNote(id string) (*Note, error) {
	row := s.db.QueryRow(
		`SELECT id, title, content, note_date, privacy_level, tags, created_at FROM notes WHERE id = ?`, id,
	)
	var (
		n    Note
		tags sql.NullString
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.NoteDate, &n.PrivacyLevel, &tags, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Tags = scanTags(tags)
	return &n, nil
}

// ListNotes returns notes newest-first.
func (s *Store) ListNotes(limit int) ([]Note, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, title, content, note_date, privacy_level, tags, created_at
		 FROM notes ORDER BY note_date DESC, created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Note
	for rows.Next() {
		var (
			n    Note
			tags sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.NoteDate, &n.PrivacyLevel, &tags, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Tags = scanTags(tags)
		out = append(out, n)
	}
	return out, rows.Err()
}

// DeleteNote removes a note.
func (s *Store) DeleteNote(id string) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: note %s not found", id)
	}
	return nil
}
