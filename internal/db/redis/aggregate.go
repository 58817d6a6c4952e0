package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/shopdex/internal/db"
)

// Aliases used for reducer outputs.
const (
	aliasCount  = "count"
	aliasBucket = "bucket"
	aliasValue  = "value"
)

// Aggregate runs one FT.AGGREGATE per aggregation in a single DoMulti round-trip.
func (s *Store) Aggregate(ctx context.Context, q *db.AggregateQuery) (*db.AggregateResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}

	out := &db.AggregateResult{
		Buckets: make(map[string][]db.Bucket),
		Values:  make(map[string]float64),
	}
	if len(q.Aggregations) == 0 {
		return out, nil
	}

	query, err := buildQuery(q.Criteria)
	if err != nil {
		return nil, err
	}

	cmds := make([]rueidis.Completed, len(q.Aggregations))
	for i := range q.Aggregations {
		args, err := buildAggregateArgs(q.IndexName, query, &q.Aggregations[i])
		if err != nil {
			return nil, err
		}
		cmds[i] = s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		agg := &q.Aggregations[i]
		raw, err := res.ToArray()
		if err != nil {
			return nil, fmt.Errorf("aggregation %s: %w", agg.Name, searchError(db.OpAggregate, err))
		}
		rows, err := parseAggregateRows(raw)
		if err != nil {
			return nil, &db.Error{Op: db.OpAggregate, Err: fmt.Errorf("aggregation %s: %w", agg.Name, err)}
		}

		switch agg.Kind {
		case db.AggTerms:
			out.Buckets[agg.Name], err = rowsToBuckets(rows, agg.Field)
		case db.AggHistogram:
			out.Buckets[agg.Name], err = rowsToBuckets(rows, aliasBucket)
		case db.AggAvg, db.AggSum:
			out.Values[agg.Name], err = rowsToValue(rows)
		}
		if err != nil {
			return nil, &db.Error{Op: db.OpAggregate, Err: fmt.Errorf("aggregation %s: %w", agg.Name, err)}
		}
	}

	return out, nil
}

func buildAggregateArgs(index, query string, a *db.Aggregation) ([]string, error) {
	if a.Name == "" {
		return nil, fmt.Errorf("aggregation name is required")
	}
	if a.Field == "" {
		return nil, fmt.Errorf("aggregation %s: field is required", a.Name)
	}
	field := "@" + a.Field
	args := []string{index, query}

	switch a.Kind {
	case db.AggTerms:
		if a.Size <= 0 {
			return nil, fmt.Errorf("aggregation %s: size must be positive", a.Name)
		}
		args = append(args,
			"GROUPBY", "1", field,
			"REDUCE", "COUNT", "0", "AS", aliasCount,
			"SORTBY", "2", "@"+aliasCount, "DESC",
			"LIMIT", "0", strconv.Itoa(a.Size),
		)

	case db.AggHistogram:
		if a.Interval <= 0 {
			return nil, fmt.Errorf("aggregation %s: interval must be positive", a.Name)
		}
		buckets := a.Size
		if buckets <= 0 {
			buckets = db.DefaultHistogramBuckets
		}
		interval := strconv.FormatFloat(a.Interval, 'g', -1, 64)
		n := strconv.Itoa(buckets)
		// Without MAX and LIMIT the sorter stops at 10 rows.
		args = append(args,
			"LOAD", "1", field,
			"APPLY", fmt.Sprintf("floor(%s/%s)*%s", field, interval, interval), "AS", aliasBucket,
			"GROUPBY", "1", "@"+aliasBucket,
			"REDUCE", "COUNT", "0", "AS", aliasCount,
			"SORTBY", "2", "@"+aliasBucket, "ASC", "MAX", n,
			"LIMIT", "0", n,
		)

	case db.AggAvg, db.AggSum:
		reducer := "AVG"
		if a.Kind == db.AggSum {
			reducer = "SUM"
		}
		args = append(args,
			"LOAD", "1", field,
			"GROUPBY", "0",
			"REDUCE", reducer, "1", field, "AS", aliasValue,
		)

	default:
		return nil, fmt.Errorf("aggregation %s: unknown kind %d", a.Name, a.Kind)
	}

	return append(args, "DIALECT", dialect), nil
}

// parseAggregateRows reads [total, row1, row2, ...] where each row is a flat
// [name, value, ...] array.
func parseAggregateRows(raw []rueidis.RedisMessage) ([]map[string]string, error) {
	if len(raw) < 2 {
		return nil, nil
	}
	rows := make([]map[string]string, 0, len(raw)-1)
	for i, msg := range raw[1:] {
		fields, err := msg.ToArray()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		row, err := parseFieldPairs(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// rowsToBuckets reads keyField and the count of every row. A row missing
// either is an error.
func rowsToBuckets(rows []map[string]string, keyField string) ([]db.Bucket, error) {
	buckets := make([]db.Bucket, 0, len(rows))
	for i, row := range rows {
		key, ok := row[keyField]
		if !ok {
			return nil, fmt.Errorf("row %d: missing %s", i, keyField)
		}
		count, err := strconv.ParseInt(row[aliasCount], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: count: %w", i, err)
		}
		buckets = append(buckets, db.Bucket{Key: key, Count: count})
	}
	return buckets, nil
}

// rowsToValue returns the single reducer value; no matching documents yields 0.
func rowsToValue(rows []map[string]string) (float64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	v, err := strconv.ParseFloat(rows[0][aliasValue], 64)
	if err != nil {
		return 0, fmt.Errorf("value: %w", err)
	}
	return v, nil
}
