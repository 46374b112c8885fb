package query

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AggFunc is an aggregation function.
type AggFunc string

const (
	AggSum   AggFunc = "sum"
	AggCount AggFunc = "count"
	AggAvg   AggFunc = "avg"
)

// Aggregation is a declarative aggregation specification. Field may be
// empty for count, which then counts entity rows. GroupBy paths may
// traverse relationships, exactly like filter paths.
type Aggregation struct {
	Function AggFunc  `json:"function"`
	Field    string   `json:"field"`
	GroupBy  []string `json:"group_by,omitempty"`
}

// GroupResult is one aggregation bucket. GroupValues preserves the order
// of the group_by paths.
type GroupResult struct {
	GroupValues []any `json:"group_values"`
	Result      any   `json:"result"`
}

// AggregationResult is the output of an aggregation query: a scalar
// result when ungrouped, or per-group buckets in first-seen order.
type AggregationResult struct {
	Function    AggFunc
	Field       string
	Result      any
	Groups      []GroupResult
	TotalGroups int
}

// MarshalJSON emits the ungrouped shape {function, field, result} or the
// grouped shape {function, field, groups, total_groups}.
func (r AggregationResult) MarshalJSON() ([]byte, error) {
	if r.Groups != nil {
		return json.Marshal(struct {
			Function    AggFunc       `json:"function"`
			Field       string        `json:"field"`
			Groups      []GroupResult `json:"groups"`
			TotalGroups int           `json:"total_groups"`
		}{r.Function, r.Field, r.Groups, r.TotalGroups})
	}
	return json.Marshal(struct {
		Function AggFunc `json:"function"`
		Field    string  `json:"field"`
		Result   any     `json:"result"`
	}{r.Function, r.Field, r.Result})
}

// aggQuery is a compiled aggregation: resolved value and group columns
// plus everything needed to build the row-fetch SQL.
type aggQuery struct {
	agg        Aggregation
	base       *Entity
	valueCol   string // qualified column, empty when counting entity rows
	valueType  ValueType
	groupCols  []string // qualified columns, in group_by order
	groupTypes []ValueType
}

// compileAggregation validates the aggregation spec against the registry
// and registers the joins its paths need on the builder.
func compileAggregation(reg *Registry, b *sqlBuilder, entityType string, agg Aggregation) (*aggQuery, error) {
	base, err := reg.Entity(entityType)
	if err != nil {
		return nil, err
	}

	q := &aggQuery{agg: agg, base: base}

	switch agg.Function {
	case AggSum, AggAvg:
		rp, err := reg.ResolvePath(entityType, agg.Field)
		if err != nil {
			return nil, err
		}
		if rp.Type != TypeInteger && rp.Type != TypeDecimal {
			return nil, &OperatorFieldError{Operator: Operator(agg.Function), Field: agg.Field, Type: rp.Type}
		}
		q.valueCol = b.aliasFor(rp) + "." + rp.Column
		q.valueType = rp.Type

	case AggCount:
		// Count accepts any field, or the entity identity when no field
		// is given.
		if agg.Field != "" && agg.Field != "id" {
			rp, err := reg.ResolvePath(entityType, agg.Field)
			if err != nil {
				return nil, err
			}
			q.valueCol = b.aliasFor(rp) + "." + rp.Column
			q.valueType = rp.Type
		}

	default:
		return nil, fmt.Errorf("query: unknown aggregation function %q", agg.Function)
	}

	for _, path := range agg.GroupBy {
		rp, err := reg.ResolvePath(entityType, path)
		if err != nil {
			return nil, err
		}
		q.groupCols = append(q.groupCols, b.aliasFor(rp)+"."+rp.Column)
		q.groupTypes = append(q.groupTypes, rp.Type)
	}

	return q, nil
}

// rowSQL builds the row-fetch query: base id, group columns, value
// column. Grouping and arithmetic happen in run — SQLite has no decimal
// type, so sums and averages are folded with exact decimal arithmetic
// instead of REAL aggregates.
func (q *aggQuery) rowSQL(b *sqlBuilder, where string) string {
	cols := []string{baseAlias + ".id"}
	cols = append(cols, q.groupCols...)
	if q.valueCol != "" {
		cols = append(cols, q.valueCol)
	}

	sqlStr := fmt.Sprintf("SELECT %s FROM %s AS %s", strings.Join(cols, ", "), q.base.Table, baseAlias)
	if b.hasJoins() {
		sqlStr += " " + b.joinSQL()
	}
	if where != "" {
		sqlStr += " WHERE " + where
	}
	return sqlStr
}

type aggBucket struct {
	values []any
	sum    decimal.Decimal
	count  int64
}

// run executes the compiled aggregation and folds rows into buckets.
// Rows are deduplicated on (base id, group key) so a to-many join never
// double-counts an entity within a bucket. Buckets keep first-seen order.
func (q *aggQuery) run(ctx context.Context, db *sql.DB, b *sqlBuilder, where string, args []any) (*AggregationResult, error) {
	rows, err := db.QueryContext(ctx, q.rowSQL(b, where), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var (
		order   []string
		buckets = map[string]*aggBucket{}
		seen    = map[string]bool{}
	)

	for rows.Next() {
		var id string
		groupVals := make([]any, len(q.groupCols))
		dests := []any{&id}
		for i := range groupVals {
			dests = append(dests, &groupVals[i])
		}
		var raw sql.NullString
		if q.valueCol != "" {
			dests = append(dests, &raw)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}

		for i, v := range groupVals {
			if bs, ok := v.([]byte); ok {
				groupVals[i] = string(bs)
			}
		}

		key := groupKey(groupVals)
		if seen[id+"\x00"+key] {
			continue
		}
		seen[id+"\x00"+key] = true

		bucket, ok := buckets[key]
		if !ok {
			bucket = &aggBucket{values: groupVals}
			buckets[key] = bucket
			order = append(order, key)
		}

		if q.valueCol == "" {
			bucket.count++
			continue
		}
		if !raw.Valid {
			continue // NULL values are excluded from sum, avg and count
		}
		bucket.count++
		if q.agg.Function != AggCount {
			d, err := decimal.NewFromString(raw.String)
			if err != nil {
				return nil, &TypeMismatchError{Field: q.agg.Field, Want: q.valueType, Value: raw.String}
			}
			bucket.sum = bucket.sum.Add(d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &AggregationResult{Function: q.agg.Function, Field: q.agg.Field}

	if len(q.groupCols) == 0 {
		var all *aggBucket
		if len(order) > 0 {
			all = buckets[order[0]]
		}
		result.Result = q.bucketResult(all)
		return result, nil
	}

	result.Groups = make([]GroupResult, 0, len(order))
	for _, key := range order {
		bucket := buckets[key]
		result.Groups = append(result.Groups, GroupResult{
			GroupValues: bucket.values,
			Result:      q.bucketResult(bucket),
		})
	}
	result.TotalGroups = len(result.Groups)
	return result, nil
}

// bucketResult derives one bucket's value. Sum of zero rows is zero;
// average of zero rows is null. That asymmetry is deliberate and must
// not be "fixed" — callers depend on both conventions.
func (q *aggQuery) bucketResult(b *aggBucket) any {
	switch q.agg.Function {
	case AggCount:
		if b == nil {
			return int64(0)
		}
		return b.count
	case AggSum:
		if b == nil {
			return decimal.Zero
		}
		return b.sum
	default: // avg
		if b == nil || b.count == 0 {
			return nil
		}
		return b.sum.Div(decimal.NewFromInt(b.count))
	}
}

// groupKey builds the bucket key for one row's group-by tuple.
func groupKey(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			parts[i] = "\x01"
			continue
		}
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, "\x00")
}
