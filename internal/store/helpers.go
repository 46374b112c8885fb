package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// newID is a package-level var to allow deterministic IDs in tests.
var newID = uuid.NewString

// nowRFC3339 is the canonical timestamp written to created_at columns.
// Stored timestamps must stay textually comparable, so everything is
// UTC RFC3339.
func nowRFC3339() string {
	return timeNow().UTC().Format(time.RFC3339)
}

// nullableString converts "" to NULL for optional text columns.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableInt converts a nil pointer to NULL.
func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

// nullableStrPtr converts a nil pointer to NULL.
func nullableStrPtr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// tagsJSON serializes a tag list to its JSON column representation.
// An empty list is stored as NULL, not "[]".
func tagsJSON(tags []string) any {
	if len(tags) == 0 {
		return nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	return string(data)
}

// scanTags deserializes a tags column.
func scanTags(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil
	}
	return tags
}

// strp converts a NullString to an optional field value.
func strp(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// intp converts a NullInt64 to an optional field value.
func intp(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
