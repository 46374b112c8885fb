package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath_ScalarField(t *testing.T) {
	reg := DefaultRegistry()

	rp, err := reg.ResolvePath("work_session", "duration_hours")
	require.NoError(t, err)
	assert.Empty(t, rp.Hops)
	assert.Equal(t, "duration_hours", rp.Column)
	assert.Equal(t, TypeDecimal, rp.Type)
}

func TestResolvePath_Alias(t *testing.T) {
	reg := DefaultRegistry()

	rp, err := reg.ResolvePath("work_session", "on_behalf_of")
	require.NoError(t, err)
	assert.Equal(t, "on_behalf_of_id", rp.Field)
	assert.Equal(t, "on_behalf_of_id", rp.Column)
	assert.Equal(t, TypeString, rp.Type)
}

func TestResolvePath_SingleHop(t *testing.T) {
	reg := DefaultRegistry()

	rp, err := reg.ResolvePath("work_session", "project.name")
	require.NoError(t, err)
	require.Len(t, rp.Hops, 1)
	assert.Equal(t, "project", rp.Hops[0].Name)
	assert.Equal(t, "projects", rp.Hops[0].Target.Table)
	assert.Equal(t, "name", rp.Column)
	assert.Equal(t, TypeString, rp.Type)
}

func TestResolvePath_TwoHopsThroughManyRelationship(t *testing.T) {
	reg := DefaultRegistry()

	rp, err := reg.ResolvePath("meeting", "attendees.person.full_name")
	require.NoError(t, err)
	require.Len(t, rp.Hops, 2)
	assert.Equal(t, Many, rp.Hops[0].Rel.Cardinality)
	assert.Equal(t, One, rp.Hops[1].Rel.Cardinality)
	assert.Equal(t, "full_name", rp.Column)
}

func TestResolvePath_UnknownEntity(t *testing.T) {
	reg := DefaultRegistry()

	_, err := reg.ResolvePath("invoice", "total")
	var ue *UnknownEntityError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "invoice", ue.Entity)
}

func TestResolvePath_UnknownSegments(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name        string
		entity      string
		path        string
		wantSegment string
		wantEntity  string
	}{
		{"unknown terminal field", "work_session", "color", "color", "work_session"},
		{"unknown relationship", "work_session", "invoice.total", "invoice", "work_session"},
		{"unknown field after hop", "work_session", "project.budget", "budget", "project"},
		{"scalar used as relationship", "work_session", "description.length", "description", "work_session"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.ResolvePath(tt.entity, tt.path)
			var uf *UnknownFieldError
			require.ErrorAs(t, err, &uf)
			assert.Equal(t, tt.wantSegment, uf.Segment)
			assert.Equal(t, tt.wantEntity, uf.Entity)
			assert.Equal(t, tt.path, uf.Path)
		})
	}
}

func TestRegistry_UnknownEntityIsTypedError(t *testing.T) {
	reg := DefaultRegistry()

	_, err := reg.Entity("invoice")
	var ue *UnknownEntityError
	assert.True(t, errors.As(err, &ue))
}

func TestEntityNames_DeclarationOrder(t *testing.T) {
	reg := DefaultRegistry()

	names := reg.EntityNames()
	require.NotEmpty(t, names)
	assert.Equal(t, "work_session", names[0])
	assert.Contains(t, names, "meeting_attendee")
}

func TestFieldNames_DeclarationOrder(t *testing.T) {
	reg := DefaultRegistry()

	e, err := reg.Entity("work_session")
	require.NoError(t, err)
	names := e.FieldNames()
	assert.Equal(t, "id", names[0])
	assert.Equal(t, "created_at", names[len(names)-1])
}
