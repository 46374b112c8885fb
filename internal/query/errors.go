package query

import "fmt"

// UnknownEntityError reports a query against an entity type that is not
// declared in the registry.
type UnknownEntityError struct {
	Entity string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("query: unknown entity type %q", e.Entity)
}

// UnknownFieldError reports a path that failed to resolve. Segment names
// the first segment that did not match a relationship or scalar field.
type UnknownFieldError struct {
	Entity  string
	Path    string
	Segment string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("query: unknown field %q in path %q on entity %q", e.Segment, e.Path, e.Entity)
}

// TypeMismatchError reports a filter literal that cannot be coerced to the
// terminal field's declared value type.
type TypeMismatchError struct {
	Field string
	Want  ValueType
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("query: value %v is not valid for field %q (%s)", e.Value, e.Field, e.Want)
}

// OperatorFieldError reports an operator applied to a field type it does
// not support, e.g. HAS_TAG on a non-array field.
type OperatorFieldError struct {
	Operator Operator
	Field    string
	Type     ValueType
}

func (e *OperatorFieldError) Error() string {
	return fmt.Sprintf("query: operator %s cannot be applied to field %q (%s)", e.Operator, e.Field, e.Type)
}
