package store

import (
	"database/sql"
	"fmt"
)

// ─── Employers ───────────────────────────────────────────────────────────────

// AddEmployer persists an employer.
func (s *Store) AddEmployer(name, website string) (*Employer, error) {
	if name == "" {
		return nil, fmt.Errorf("store: employer requires a name")
	}
	id := newID()
	_, err := s.db.Exec(
		`INSERT INTO employers (id, name, website, created_at) VALUES (?, ?, ?, ?)`,
		id, name, nullableString(website), nowRFC3339(),
	)
	if err != nil {
		return nil, err
	}
	return s.GetEmployer(id)
}

// GetEmployer retrieves an employer by ID.
func (s *Store) GetEmployer(id string) (*Employer, error) {
	row := s.db.QueryRow(`SELECT id, name, website, created_at FROM employers WHERE id = ?`, id)
	var (
		e       Employer
		website sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Name, &website, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Website = strp(website)
	return &e, nil
}

// ListEmployers returns employers ordered by name.
func (s *Store) ListEmployers() ([]Employer, error) {
	rows, err := s.db.Query(`SELECT id, name, website, created_at FROM employers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Employer
	for rows.Next() {
		var (
			e       Employer
			website sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &website, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Website = strp(website)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ─── Clients ─────────────────────────────────────────────────────────────────

// AddClientParams holds the input for creating a client.
type AddClientParams struct {
	Name         string `json:"name"`
	EmployerID   string `json:"employer_id,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// AddClient persists a client.
func (s *Store) AddClient(p AddClientParams) (*Client, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("store: client requires a name")
	}
	id := newID()
	_, err := s.db.Exec(
		`INSERT INTO clients (id, name, employer_id, contact_email, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, p.Name, nullableString(p.EmployerID), nullableString(p.ContactEmail), nowRFC3339(),
	)
	if err != nil {
		return nil, err
	}
	return s.GetClient(id)
}

// GetClient retrieves a client by ID.
func (s *Store) GetClient(id string) (*Client, error) {
	row := s.db.QueryRow(`SELECT id, name, employer_id, contact_email, created_at FROM clients WHERE id = ?`, id)
	var (
		c          Client
		employerID sql.NullString
		email      sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &employerID, &email, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.EmployerID = strp(employerID)
	c.ContactEmail = strp(email)
	return &c, nil
}

// ListClients returns clients ordered by name.
func (s *Store) ListClients() ([]Client, error) {
	rows, err := s.db.Query(`SELECT id, name, employer_id, contact_email, created_at FROM clients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Client
	for rows.Next() {
		var (
			c          Client
			employerID sql.NullString
			email      sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &employerID, &email, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.EmployerID = strp(employerID)
		c.ContactEmail = strp(email)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ─── Projects ────────────────────────────────────────────────────────────────

// AddProjectParams holds the input for creating a project.
type AddProjectParams struct {
	Name     string   `json:"name"`
	ClientID string   `json:"client_id,omitempty"`
	Status   string   `json:"status,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// AddProject persists a project.
func (s *Store) AddProject(p AddProjectParams) (*Project, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("store: project requires a name")
	}
	status := p.Status
	if status == "" {
		status = "active"
	}
	id := newID()
	_, err := s.db.Exec(
		`INSERT INTO projects (id, name, client_id, status, tags, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.Name, nullableString(p.ClientID), status, tagsJSON(p.Tags), nowRFC3339(),
	)
	if err != nil {
		return nil, err
	}
	return s.GetProject(id)
}

// GetProject retrieves a project by ID.
func (s *Store) GetProject(id string) (*Project, error) {
	row := s.db.QueryRow(`SELECT id, name, client_id, status, tags, created_at FROM projects WHERE id = ?`, id)
	var (
		p        Project
		clientID sql.NullString
		tags     sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &clientID, &p.Status, &tags, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.ClientID = strp(clientID)
	p.Tags = scanTags(tags)
	return &p, nil
}

// ListProjects returns projects ordered by name, optionally filtered by
// status ("" = all).
func (s *Store) ListProjects(status string) ([]Project, error) {
	query := `SELECT id, name, client_id, status, tags, created_at FROM projects`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Project
	for rows.Next() {
		var (
			p        Project
			clientID sql.NullString
			tags     sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &clientID, &p.Status, &tags, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.ClientID = strp(clientID)
		p.Tags = scanTags(tags)
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetProjectStatus updates a project's status.
func (s *Store) SetProjectStatus(id, status string) error {
	res, err := s.db.Exec(`UPDATE projects SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: project %s not found", id)
	}
	return nil
}
