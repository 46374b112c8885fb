// Package query implements the structured query engine: a static entity
// schema registry, a filter compiler, an aggregation compiler, and the
// engine that orchestrates them against the SQLite store.
//
// The registry is immutable after construction. Every filter and group-by
// path is resolved against it before any SQL is built, so an invalid path
// is a typed compile error, never a runtime failure surfacing from the
// store.
package query

import "strings"

// ValueType is the declared type of a scalar field.
type ValueType string

const (
	TypeString      ValueType = "string"
	TypeInteger     ValueType = "integer"
	TypeDecimal     ValueType = "decimal"
	TypeDate        ValueType = "date"
	TypeTimestamp   ValueType = "timestamp"
	TypeEnum        ValueType = "enum"
	TypeBoolean     ValueType = "boolean"
	TypeStringArray ValueType = "string_array"
)

// Cardinality describes a relationship edge.
type Cardinality string

const (
	One  Cardinality = "one"
	Many Cardinality = "many"
)

// Field maps a public field name to its physical column and type.
type Field struct {
	Column string
	Type   ValueType
}

// Relationship is a named edge to another entity.
//
// For cardinality one, JoinColumn is the foreign key column on the source
// table pointing at the target's id. For cardinality many, JoinColumn is
// the foreign key column on the target table pointing back at the source.
type Relationship struct {
	Target      string
	Cardinality Cardinality
	JoinColumn  string
}

// Entity is one registry entry: a table plus its fields, relationships,
// and query-facing field aliases.
type Entity struct {
	Name          string
	Table         string
	Fields        map[string]Field
	Relationships map[string]Relationship
	Aliases       map[string]string

	fieldOrder []string
}

// FieldNames returns the entity's public field names in declaration order.
func (e *Entity) FieldNames() []string {
	out := make([]string, len(e.fieldOrder))
	copy(out, e.fieldOrder)
	return out
}

// resolveFieldName applies the alias table, then falls back to the
// literal name. Returns the canonical field name and whether it exists.
func (e *Entity) resolveFieldName(name string) (string, Field, bool) {
	if aliased, ok := e.Aliases[name]; ok {
		name = aliased
	}
	f, ok := e.Fields[name]
	return name, f, ok
}

func newEntity(name, table string) *Entity {
	return &Entity{
		Name:          name,
		Table:         table,
		Fields:        map[string]Field{},
		Relationships: map[string]Relationship{},
		Aliases:       map[string]string{},
	}
}

func (e *Entity) scalar(name, column string, t ValueType) *Entity {
	e.Fields[name] = Field{Column: column, Type: t}
	e.fieldOrder = append(e.fieldOrder, name)
	return e
}

func (e *Entity) rel(name, target string, card Cardinality, joinColumn string) *Entity {
	e.Relationships[name] = Relationship{Target: target, Cardinality: card, JoinColumn: joinColumn}
	return e
}

func (e *Entity) alias(queryName, fieldName string) *Entity {
	e.Aliases[queryName] = fieldName
	return e
}

// Registry holds the declared entity schemas. Immutable after construction.
type Registry struct {
	entities map[string]*Entity
	order    []string
}

func newRegistry(entities ...*Entity) *Registry {
	r := &Registry{entities: map[string]*Entity{}}
	for _, e := range entities {
		r.entities[e.Name] = e
		r.order = append(r.order, e.Name)
	}
	return r
}

// Entity looks up an entity type. Querying an undeclared type is an
// error, never an empty result.
func (r *Registry) Entity(name string) (*Entity, error) {
	e, ok := r.entities[name]
	if !ok {
		return nil, &UnknownEntityError{Entity: name}
	}
	return e, nil
}

// EntityNames returns all declared entity type names in declaration order.
func (r *Registry) EntityNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Hop is one resolved relationship traversal in a path.
type Hop struct {
	Name   string
	Source *Entity
	Target *Entity
	Rel    Relationship
}

// ResolvedPath is the result of resolving a dotted path: the ordered
// relationship hops followed by the terminal scalar field.
type ResolvedPath struct {
	Entity *Entity
	Hops   []Hop
	Field  string
	Column string
	Type   ValueType
}

// prefix returns the dotted relationship prefix up to and including hop i.
func (p *ResolvedPath) prefix(i int) string {
	parts := make([]string, 0, i+1)
	for _, h := range p.Hops[:i+1] {
		parts = append(parts, h.Name)
	}
	return strings.Join(parts, ".")
}

// ResolvePath splits path on "." and walks relationships: every segment
// before the last must be a relationship on the current entity, and the
// last segment must be a scalar field (alias-resolved) of the final
// entity. Fails fast on the first invalid segment.
func (r *Registry) ResolvePath(entityType, path string) (*ResolvedPath, error) {
	base, err := r.Entity(entityType)
	if err != nil {
		return nil, err
	}

	segments := strings.Split(path, ".")
	resolved := &ResolvedPath{Entity: base}
	current := base
	for _, seg := range segments[:len(segments)-1] {
		rel, ok := current.Relationships[seg]
		if !ok {
			return nil, &UnknownFieldError{Entity: current.Name, Path: path, Segment: seg}
		}
		target, err := r.Entity(rel.Target)
		if err != nil {
			return nil, err
		}
		resolved.Hops = append(resolved.Hops, Hop{Name: seg, Source: current, Target: target, Rel: rel})
		current = target
	}

	terminal := segments[len(segments)-1]
	name, field, ok := current.resolveFieldName(terminal)
	if !ok {
		return nil, &UnknownFieldError{Entity: current.Name, Path: path, Segment: terminal}
	}

	resolved.Field = name
	resolved.Column = field.Column
	resolved.Type = field.Type
	return resolved, nil
}
