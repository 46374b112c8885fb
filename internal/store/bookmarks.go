package store

import (
	"database/sql"
	"fmt"
)

// AddBookmarkParams holds the input for saving a bookmark.
type AddBookmarkParams struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// AddBookmark persists a bookmark.
func (s *Store) AddBookmark(p AddBookmarkParams) (*Bookmark, error) {
	if p.URL == "" {
		return nil, fmt.Errorf("store: bookmark requires a url")
	}
	id := newID()
	_, err := s.db.Exec(
		`INSERT INTO bookmarks (id, url, title, description, tags, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.URL, nullableString(p.Title), nullableString(p.Description), tagsJSON(p.Tags), nowRFC3339(),
	)
	if err != nil {
		return nil, err
	}
	return s.GetBookmark(id)
}

// GetBookmark retrieves a bookmark by ID.
func (s *Store) GetBookmark(id string) (*Bookmark, error) {
	row := s.db.QueryRow(
		`SELECT id, url, title, description, tags, created_at FROM bookmarks WHERE id = ?`, id,
	)
	var (
		b     Bookmark
		title sql.NullString
		desc  sql.NullString
		tags  sql.NullString
	)
	if err := row.Scan(&b.ID, &b.URL, &title, &desc, &tags, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Title = strp(title)
	b.Description = strp(desc)
	b.Tags = scanTags(tags)
	return &b, nil
}

// ListBookmarks returns bookmarks newest-first.
func (s *Store) ListBookmarks(limit int) ([]Bookmark, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, url, title, description, tags, created_at
		 FROM bookmarks ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Bookmark
	for rows.Next() {
		var (
			b     Bookmark
			title sql.NullString
			desc  sql.NullString
			tags  sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.URL, &title, &desc, &tags, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Title = strp(title)
		b.Description = strp(desc)
		b.Tags = scanTags(tags)
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteBookmark removes a bookmark.
func (s *Store) DeleteBookmark(id string) error {
	res, err := s.db.Exec(`DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: bookmark %s not found", id)
	}
	return nil
}
