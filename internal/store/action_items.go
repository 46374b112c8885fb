package store

import (
	"database/sql"
	"fmt"
	"time"
)

// AddActionItemParams holds the input for creating an action item.
type AddActionItemParams struct {
	Description string   `json:"description"`
	Priority    *int     `json:"priority,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// AddActionItem persists an action item with status "open".
func (s *Store) AddActionItem(p AddActionItemParams) (*ActionItem, error) {
	if p.Description == "" {
		return nil, fmt.Errorf("store: action item requires a description")
	}
	if p.DueDate != "" {
		if _, err := time.Parse("2006-01-02", p.DueDate); err != nil {
			return nil, fmt.Errorf("store: invalid due date %q: %w", p.DueDate, err)
		}
	}

	id := newID()
	_, err := s.db.Exec(
		`INSERT INTO action_items (id, description, status, priority, project_id, due_date, tags, created_at)
		 VALUES (?, ?, 'open', ?, ?, ?, ?, ?)`,
		id, p.Description, nullableInt(p.Priority), nullableString(p.ProjectID),
		nullableString(p.DueDate), tagsJSON(p.Tags), nowRFC3339(),
	)
	if err != nil {
		return nil, err
	}
	return s.GetActionItem(id)
}

// GetActionItem retrieves an action item by ID.
func (s *Store) GetActionItem(id string) (*ActionItem, error) {
	row := s.db.QueryRow(
		`SELECT id, description, status, priority, project_id, due_date, tags, created_at
		 FROM action_items WHERE id = ?`, id,
	)
	return scanActionItem(row)
}

// ListActionItems returns action items, optionally filtered by status
// ("" = all), ordered by due date with undated items last.
func (s *Store) ListActionItems(status string, limit int) ([]ActionItem, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, description, status, priority, project_id, due_date, tags, created_at FROM action_items`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY due_date IS NULL, due_date, created_at LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ActionItem
	for rows.Next() {
		a, err := scanActionItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// SetActionItemStatus updates an action item's status.
func (s *Store) SetActionItemStatus(id, status string) error {
	res, err := s.db.Exec(`UPDATE action_items SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: action item %s not found", id)
	}
	return nil
}

// DeleteActionItem removes an action item.
func (s *Store) DeleteActionItem(id string) error {
	res, err := s.db.Exec(`DELETE FROM action_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: action item %s not found", id)
	}
	return nil
}

func scanActionItem(row scanner) (*ActionItem, error) {
	var (
		a         ActionItem
		priority  sql.NullInt64
		projectID sql.NullString
		dueDate   sql.NullString
		tags      sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Description, &a.Status, &priority, &projectID, &dueDate, &tags, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Priority = intp(priority)
	a.ProjectID = strp(projectID)
	a.DueDate = strp(dueDate)
	a.Tags = scanTags(tags)
	return &a, nil
}
