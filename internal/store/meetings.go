package store

import (
	"database/sql"
	"fmt"
	"time"
)

// AddMeetingParams holds the input for recording a meeting.
type AddMeetingParams struct {
	Title        string   `json:"title"`
	Agenda       string   `json:"agenda,omitempty"`
	MeetingDate  string   `json:"meeting_date"`
	ProjectID    string   `json:"project_id,omitempty"`
	PrivacyLevel string   `json:"privacy_level,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	AttendeeIDs  []string `json:"attendee_ids,omitempty"`
}

// AddMeeting persists a meeting and its attendee links in one transaction.
func (s *Store) AddMeeting(p AddMeetingParams) (*Meeting, error) {
	if p.Title == "" {
		return nil, fmt.Errorf("store: meeting requires a title")
	}
	if _, err := time.Parse("2006-01-02", p.MeetingDate); err != nil {
		return nil, fmt.Errorf("store: invalid meeting date %q: %w", p.MeetingDate, err)
	}
	privacy := p.PrivacyLevel
	if privacy == "" {
		privacy = "public"
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	id := newID()
	_, err = tx.Exec(
		`INSERT INTO meetings (id, title, agenda, meeting_date, project_id, privacy_level, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, nullableString(p.Agenda), p.MeetingDate,
		nullableString(p.ProjectID), privacy, tagsJSON(p.Tags), nowRFC3339(),
	)
	if err != nil {
		return nil, err
	}

	for _, personID := range p.AttendeeIDs {
		if _, err := tx.Exec(
			`INSERT INTO meeting_attendees (id, meeting_id, person_id) VALUES (?, ?, ?)`,
			newID(), id, personID,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetMeeting(id)
}

// GetMeeting retrieves a meeting by ID.
func (s *Store) GetMeeting(id string) (*Meeting, error) {
	row := s.db.QueryRow(
		`SELECT id, title, agenda, meeting_date, project_id, privacy_level, tags, created_at
		 FROM meetings WHERE id = ?`, id,
	)
	var (
		m         Meeting
		agenda    sql.NullString
		projectID sql.NullString
		tags      sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Title, &agenda, &m.MeetingDate, &projectID, &m.PrivacyLevel, &tags, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Agenda = strp(agenda)
	m.ProjectID = strp(projectID)
	m.Tags = scanTags(tags)
	return &m, nil
}

// ListMeetings returns meetings newest-first.
func (s *Store) ListMeetings(limit int) ([]Meeting, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, title, agenda, meeting_date, project_id, privacy_level, tags, created_at
		 FROM meetings ORDER BY meeting_date DESC, created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Meeting
	for rows.Next() {
		var (
			m         Meeting
			agenda    sql.NullString
			projectID sql.NullString
			tags      sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Title, &agenda, &m.MeetingDate, &projectID, &m.PrivacyLevel, &tags, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Agenda = strp(agenda)
		m.ProjectID = strp(projectID)
		m.Tags = scanTags(tags)
		out = append(out, m)
	}
	return out, rows.Err()
}

// AddAttendee links a person to an existing meeting.
func (s *Store) AddAttendee(meetingID, personID, role string) (*Attendee, error) {
	id := newID()
	_, err := s.db.Exec(
		`INSERT INTO meeting_attendees (id, meeting_id, person_id, role) VALUES (?, ?, ?, ?)`,
		id, meetingID, personID, nullableString(role),
	)
	if err != nil {
		return nil, err
	}
	a := &Attendee{ID: id, MeetingID: meetingID, PersonID: personID}
	if role != "" {
		a.Role = &role
	}
	return a, nil
}

// MeetingAttendees lists the attendee links for a meeting.
func (s *Store) MeetingAttendees(meetingID string) ([]Attendee, error) {
	rows, err := s.db.Query(
		`SELECT id, meeting_id, person_id, role FROM meeting_attendees WHERE meeting_id = ?`, meetingID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Attendee
	for rows.Next() {
		var (
			a    Attendee
			role sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.MeetingID, &a.PersonID, &role); err != nil {
			return nil, err
		}
		a.Role = strp(role)
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteMeeting removes a meeting; attendee links cascade.
func (s *Store) DeleteMeeting(id string) error {
	res, err := s.db.Exec(`DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: meeting %s not found", id)
	}
	return nil
}
