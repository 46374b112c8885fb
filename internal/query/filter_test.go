package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(t *testing.T, reg *Registry, entity string) *sqlBuilder {
	t.Helper()
	e, err := reg.Entity(entity)
	require.NoError(t, err)
	return newSQLBuilder(e)
}

func TestCompileFilter_Comparison(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	p, err := compileFilter(reg, b, "work_session", Filter{
		Field: "session_date", Operator: OpGTE, Value: "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "b.session_date >= ?", p.sql)
	assert.Equal(t, []any{"2024-03-01"}, p.args)
	assert.False(t, b.hasJoins())
}

func TestCompileFilter_DecimalCastsToReal(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	p, err := compileFilter(reg, b, "work_session", Filter{
		Field: "duration_hours", Operator: OpGT, Value: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAST(b.duration_hours AS REAL) > ?", p.sql)
}

func TestCompileFilter_NullChecksIgnoreValue(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	p, err := compileFilter(reg, b, "work_session", Filter{
		Field: "on_behalf_of", Operator: OpIsNull, Value: "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "b.on_behalf_of_id IS NULL", p.sql)
	assert.Empty(t, p.args)

	p, err = compileFilter(reg, b, "work_session", Filter{
		Field: "on_behalf_of", Operator: OpIsNotNull,
	})
	require.NoError(t, err)
	assert.Equal(t, "b.on_behalf_of_id IS NOT NULL", p.sql)
}

func TestCompileFilter_HasTag(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	p, err := compileFilter(reg, b, "work_session", Filter{
		Field: "tags", Operator: OpHasTag, Value: "frontend",
	})
	require.NoError(t, err)
	assert.Equal(t, "EXISTS (SELECT 1 FROM json_each(b.tags) WHERE json_each.value = ?)", p.sql)
	assert.Equal(t, []any{"frontend"}, p.args)
}

func TestCompileFilter_HasTagOnScalarField(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	_, err := compileFilter(reg, b, "work_session", Filter{
		Field: "description", Operator: OpHasTag, Value: "frontend",
	})
	var oe *OperatorFieldError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, OpHasTag, oe.Operator)
	assert.Equal(t, TypeString, oe.Type)
}

func TestCompileFilter_ComparisonOnArrayField(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	_, err := compileFilter(reg, b, "work_session", Filter{
		Field: "tags", Operator: OpEQ, Value: "frontend",
	})
	var oe *OperatorFieldError
	require.ErrorAs(t, err, &oe)
}

func TestCompileFilter_ContainsCaseInsensitive(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	p, err := compileFilter(reg, b, "work_session", Filter{
		Field: "description", Operator: OpContains, Value: "Billing",
	})
	require.NoError(t, err)
	assert.Equal(t, "instr(lower(b.description), lower(?)) > 0", p.sql)
	assert.Equal(t, []any{"Billing"}, p.args)
}

func TestCompileFilter_JoinedPath(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	p, err := compileFilter(reg, b, "work_session", Filter{
		Field: "project.name", Operator: OpEQ, Value: "Website Redesign",
	})
	require.NoError(t, err)
	assert.Equal(t, "j0.name = ?", p.sql)
	assert.Equal(t, "JOIN projects AS j0 ON j0.id = b.project_id", b.joinSQL())
}

func TestCompileFilters_SharedPrefixJoinsOnce(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	where, args, err := compileFilters(reg, b, "work_session", []Filter{
		{Field: "project.name", Operator: OpEQ, Value: "Website Redesign"},
		{Field: "project.status", Operator: OpEQ, Value: "active"},
	})
	require.NoError(t, err)
	assert.Equal(t, "j0.name = ? AND j0.status = ?", where)
	assert.Equal(t, []any{"Website Redesign", "active"}, args)
	assert.Len(t, b.joins, 1)
}

func TestCompileFilters_ManyHopJoinDirection(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "meeting")

	where, _, err := compileFilters(reg, b, "meeting", []Filter{
		{Field: "attendees.person.full_name", Operator: OpEQ, Value: "Alice Moran"},
	})
	require.NoError(t, err)
	assert.Equal(t, "j1.full_name = ?", where)
	// The to-many hop puts the foreign key on the attendee side.
	assert.Equal(t,
		"JOIN meeting_attendees AS j0 ON j0.meeting_id = b.id JOIN people AS j1 ON j1.id = j0.person_id",
		b.joinSQL())
}

func TestCompileFilters_EmptyListCompilesToNothing(t *testing.T) {
	reg := DefaultRegistry()
	b := newBuilder(t, reg, "work_session")

	where, args, err := compileFilters(reg, b, "work_session", nil)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name    string
		typ     ValueType
		in      any
		want    any
		wantErr bool
	}{
		{"string ok", TypeString, "hello", "hello", false},
		{"string from number", TypeString, 42, nil, true},
		{"integer from float64", TypeInteger, float64(3), int64(3), false},
		{"integer from fractional float", TypeInteger, 3.5, nil, true},
		{"integer from numeric string", TypeInteger, "7", int64(7), false},
		{"decimal from float64", TypeDecimal, 2.5, 2.5, false},
		{"decimal from string", TypeDecimal, "2.5", 2.5, false},
		{"date ok", TypeDate, "2024-03-14", "2024-03-14", false},
		{"date malformed", TypeDate, "14/03/2024", nil, true},
		{"timestamp normalized to utc", TypeTimestamp, "2024-03-14T10:00:00+02:00", "2024-03-14T08:00:00Z", false},
		{"boolean true", TypeBoolean, true, int64(1), false},
		{"boolean from string", TypeBoolean, "true", nil, true},
		{"nil value", TypeString, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceValue("f", tt.typ, tt.in)
			if tt.wantErr {
				var tm *TypeMismatchError
				require.ErrorAs(t, err, &tm)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
