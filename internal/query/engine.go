package query

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// Engine executes structured queries against the store. It is stateless
// between invocations: each call compiles its own predicates and issues
// one logical query. Safe for concurrent use.
type Engine struct {
	db  *sql.DB
	reg *Registry
}

// NewEngine creates an Engine over an open database and an immutable
// registry.
func NewEngine(db *sql.DB, reg *Registry) *Engine {
	return &Engine{db: db, reg: reg}
}

// Registry returns the engine's schema registry.
func (e *Engine) Registry() *Registry {
	return e.reg
}

// Request is one structured query invocation.
type Request struct {
	EntityType  string       `json:"entity_type"`
	Filters     []Filter     `json:"filters,omitempty"`
	Aggregation *Aggregation `json:"aggregation,omitempty"`
	Limit       int          `json:"limit,omitempty"`
}

// Row is one entity-shaped result, keyed by public field names.
type Row map[string]any

// Result is the output of a structured query: either entity rows or an
// aggregation result, never both.
type Result struct {
	EntityType  string             `json:"entity_type"`
	TotalCount  int                `json:"total_count"`
	Results     []Row              `json:"results,omitempty"`
	Aggregation *AggregationResult `json:"aggregation,omitempty"`
}

// Query validates the request, compiles all filters into one AND-combined
// predicate, and either aggregates or selects entity rows. Any compile
// error aborts the whole call — partial results are never returned.
func (e *Engine) Query(ctx context.Context, req Request) (*Result, error) {
	entity, err := e.reg.Entity(req.EntityType)
	if err != nil {
		return nil, err
	}

	b := newSQLBuilder(entity)
	where, args, err := compileFilters(e.reg, b, req.EntityType, req.Filters)
	if err != nil {
		return nil, err
	}

	if req.Aggregation != nil {
		aq, err := compileAggregation(e.reg, b, req.EntityType, *req.Aggregation)
		if err != nil {
			return nil, err
		}
		agg, err := aq.run(ctx, e.db, b, where, args)
		if err != nil {
			return nil, err
		}
		return &Result{EntityType: req.EntityType, Aggregation: agg}, nil
	}

	rows, err := e.selectRows(ctx, entity, b, where, args, req.Limit)
	if err != nil {
		return nil, err
	}
	return &Result{EntityType: req.EntityType, TotalCount: len(rows), Results: rows}, nil
}

// selectRows runs a plain select of the entity's declared fields under
// the compiled predicate. DISTINCT guards against row multiplication
// when a filter joined a to-many relationship.
func (e *Engine) selectRows(ctx context.Context, entity *Entity, b *sqlBuilder, where string, args []any, limit int) ([]Row, error) {
	fields := entity.FieldNames()
	cols := make([]string, len(fields))
	for i, name := range fields {
		cols[i] = baseAlias + "." + entity.Fields[name].Column
	}

	keyword := "SELECT"
	if b.hasJoins() {
		keyword = "SELECT DISTINCT"
	}
	sqlStr := fmt.Sprintf("%s %s FROM %s AS %s", keyword, strings.Join(cols, ", "), entity.Table, baseAlias)
	if b.hasJoins() {
		sqlStr += " " + b.joinSQL()
	}
	if where != "" {
		sqlStr += " WHERE " + where
	}
	if limit > 0 {
		sqlStr += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := e.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []Row{}
	for rows.Next() {
		dests := make([]any, len(fields))
		strVals := make([]sql.NullString, len(fields))
		intVals := make([]sql.NullInt64, len(fields))
		for i, name := range fields {
			switch entity.Fields[name].Type {
			case TypeInteger, TypeBoolean:
				dests[i] = &intVals[i]
			default:
				dests[i] = &strVals[i]
			}
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}

		row := Row{}
		for i, name := range fields {
			row[name] = fieldValue(entity.Fields[name].Type, strVals[i], intVals[i])
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// fieldValue converts a scanned column into its public representation.
func fieldValue(t ValueType, s sql.NullString, n sql.NullInt64) any {
	switch t {
	case TypeInteger:
		if !n.Valid {
			return nil
		}
		return n.Int64
	case TypeBoolean:
		if !n.Valid {
			return nil
		}
		return n.Int64 != 0
	case TypeStringArray:
		if !s.Valid || s.String == "" {
			return nil
		}
		var tags []string
		if err := json.Unmarshal([]byte(s.String), &tags); err != nil {
			return nil
		}
		return tags
	default:
		if !s.Valid {
			return nil
		}
		return s.String
	}
}
