package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpEQ        Operator = "eq"
	OpGT        Operator = "gt"
	OpGTE       Operator = "gte"
	OpLT        Operator = "lt"
	OpLTE       Operator = "lte"
	OpContains  Operator = "contains"
	OpHasTag    Operator = "has_tag"
	OpIsNull    Operator = "is_null"
	OpIsNotNull Operator = "is_not_null"
)

// Filter is one declarative filter specification. Value is ignored for
// is_null / is_not_null.
type Filter struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
}

var comparisonSQL = map[Operator]string{
	OpEQ:  "=",
	OpGT:  ">",
	OpGTE: ">=",
	OpLT:  "<",
	OpLTE: "<=",
}

// sqlBuilder accumulates the joins a query needs. Joins are keyed by the
// dotted relationship prefix, so two filters traversing the same
// relationship share a single join and never multiply result rows.
type sqlBuilder struct {
	base     *Entity
	joins    []string
	byPrefix map[string]string
	next     int
}

// baseAlias is the table alias given to the root entity in every query.
const baseAlias = "b"

func newSQLBuilder(base *Entity) *sqlBuilder {
	return &sqlBuilder{base: base, byPrefix: map[string]string{}}
}

// aliasFor joins every hop of the resolved path (deduplicated by prefix)
// and returns the alias of the table holding the terminal column.
func (b *sqlBuilder) aliasFor(p *ResolvedPath) string {
	alias := baseAlias
	for i, hop := range p.Hops {
		prefix := p.prefix(i)
		if existing, ok := b.byPrefix[prefix]; ok {
			alias = existing
			continue
		}
		joined := fmt.Sprintf("j%d", b.next)
		b.next++

		var on string
		if hop.Rel.Cardinality == Many {
			on = fmt.Sprintf("%s.%s = %s.id", joined, hop.Rel.JoinColumn, alias)
		} else {
			on = fmt.Sprintf("%s.id = %s.%s", joined, alias, hop.Rel.JoinColumn)
		}
		b.joins = append(b.joins, fmt.Sprintf("JOIN %s AS %s ON %s", hop.Target.Table, joined, on))
		b.byPrefix[prefix] = joined
		alias = joined
	}
	return alias
}

func (b *sqlBuilder) joinSQL() string {
	return strings.Join(b.joins, " ")
}

func (b *sqlBuilder) hasJoins() bool {
	return len(b.joins) > 0
}

// predicate is one compiled boolean condition plus its bind arguments.
type predicate struct {
	sql  string
	args []any
}

// compileFilter resolves the filter's field path, registers any joins it
// needs on the builder, and produces the predicate SQL.
func compileFilter(reg *Registry, b *sqlBuilder, entityType string, f Filter) (predicate, error) {
	rp, err := reg.ResolvePath(entityType, f.Field)
	if err != nil {
		return predicate{}, err
	}
	col := b.aliasFor(rp) + "." + rp.Column

	switch f.Operator {
	case OpIsNull:
		return predicate{sql: col + " IS NULL"}, nil
	case OpIsNotNull:
		return predicate{sql: col + " IS NOT NULL"}, nil

	case OpHasTag:
		if rp.Type != TypeStringArray {
			return predicate{}, &OperatorFieldError{Operator: f.Operator, Field: f.Field, Type: rp.Type}
		}
		tag, ok := f.Value.(string)
		if !ok {
			return predicate{}, &TypeMismatchError{Field: f.Field, Want: TypeString, Value: f.Value}
		}
		sql := fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)", col)
		return predicate{sql: sql, args: []any{tag}}, nil

	case OpContains:
		if rp.Type != TypeString {
			return predicate{}, &OperatorFieldError{Operator: f.Operator, Field: f.Field, Type: rp.Type}
		}
		sub, ok := f.Value.(string)
		if !ok {
			return predicate{}, &TypeMismatchError{Field: f.Field, Want: TypeString, Value: f.Value}
		}
		return predicate{sql: fmt.Sprintf("instr(lower(%s), lower(?)) > 0", col), args: []any{sub}}, nil

	case OpEQ, OpGT, OpGTE, OpLT, OpLTE:
		if rp.Type == TypeStringArray {
			return predicate{}, &OperatorFieldError{Operator: f.Operator, Field: f.Field, Type: rp.Type}
		}
		val, err := coerceValue(f.Field, rp.Type, f.Value)
		if err != nil {
			return predicate{}, err
		}
		// Decimal columns are stored as TEXT; compare numerically.
		if rp.Type == TypeDecimal {
			col = fmt.Sprintf("CAST(%s AS REAL)", col)
		}
		return predicate{sql: fmt.Sprintf("%s %s ?", col, comparisonSQL[f.Operator]), args: []any{val}}, nil

	default:
		return predicate{}, fmt.Errorf("query: unknown operator %q", f.Operator)
	}
}

// compileFilters compiles all filters AND-combined into one WHERE clause
// (without the WHERE keyword). An empty filter list compiles to "".
func compileFilters(reg *Registry, b *sqlBuilder, entityType string, filters []Filter) (string, []any, error) {
	var conds []string
	var args []any
	for _, f := range filters {
		p, err := compileFilter(reg, b, entityType, f)
		if err != nil {
			return "", nil, err
		}
		conds = append(conds, p.sql)
		args = append(args, p.args...)
	}
	return strings.Join(conds, " AND "), args, nil
}

// coerceValue converts a filter literal (typically decoded from JSON) to
// the bind value matching the field's declared type. A value that cannot
// be converted is a TypeMismatchError, never a cast failure in the store.
func coerceValue(field string, t ValueType, v any) (any, error) {
	if v == nil {
		return nil, &TypeMismatchError{Field: field, Want: t, Value: v}
	}

	switch t {
	case TypeString, TypeEnum:
		if s, ok := v.(string); ok {
			return s, nil
		}

	case TypeInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n == float64(int64(n)) {
				return int64(n), nil
			}
		case string:
			if i, err := strconv.ParseInt(n, 10, 64); err == nil {
				return i, nil
			}
		}

	case TypeDecimal:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case string:
			if d, err := decimal.NewFromString(n); err == nil {
				return d.InexactFloat64(), nil
			}
		}

	case TypeDate:
		if s, ok := v.(string); ok {
			if _, err := time.Parse("2006-01-02", s); err == nil {
				return s, nil
			}
		}

	case TypeTimestamp:
		if s, ok := v.(string); ok {
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				return ts.UTC().Format(time.RFC3339), nil
			}
		}

	case TypeBoolean:
		if bv, ok := v.(bool); ok {
			if bv {
				return int64(1), nil
			}
			return int64(0), nil
		}
	}

	return nil, &TypeMismatchError{Field: field, Want: t, Value: v}
}
