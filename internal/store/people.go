package store

import (
	"database/sql"
	"fmt"
)

// AddPersonParams holds the input for creating a contact.
type AddPersonParams struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Company  string `json:"company,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// AddPerson persists a contact.
func (s *Store) AddPerson(p AddPersonParams) (*Person, error) {
	if p.FullName == "" {
		return nil, fmt.Errorf("store: person requires a full name")
	}
	id := newID()
	_, err := s.db.Exec(
		`INSERT INTO people (id, full_name, email, company, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.FullName, nullableString(p.Email), nullableString(p.Company), nullableString(p.Notes), nowRFC3339(),
	)
	if err != nil {
		return nil, err
	}
	return s.GetPerson(id)
}

// GetPerson retrieves a contact by ID.
func (s *Store) GetPerson(id string) (*Person, error) {
	row := s.db.QueryRow(
		`SELECT id, full_name, email, company, notes, created_at FROM people WHERE id = ?`, id,
	)
	var (
		p       Person
		email   sql.NullString
		company sql.NullString
		notes   sql.NullString
	)
	if err := row.Scan(&p.ID, &p.FullName, &email, &company, &notes, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Email = strp(email)
	p.Company = strp(company)
	p.Notes = strp(notes)
	return &p, nil
}

// ListPeople returns contacts ordered by name.
func (s *Store) ListPeople(limit int) ([]Person, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(
		`SELECT id, full_name, email, company, notes, created_at FROM people ORDER BY full_name LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Person
	for rows.Next() {
		var (
			p       Person
			email   sql.NullString
			company sql.NullString
			notes   sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.FullName, &email, &company, &notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Email = strp(email)
		p.Company = strp(company)
		p.Notes = strp(notes)
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePerson removes a contact.
func (s *Store) DeletePerson(id string) error {
	res, err := s.db.Exec(`DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: person %s not found", id)
	}
	return nil
}
