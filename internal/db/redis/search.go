package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
)

// dialect is the RediSearch query dialect every command is pinned to.
const dialect = "2"

// Search runs a criteria query via FT.SEARCH with scores, sort and paging.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}

	args, err := buildSearchArgs(q)
	if err != nil {
		return nil, err
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, searchError(db.OpSearch, err)
	}

	return parseScoredResult(raw)
}

// Count returns the number of documents matching root via LIMIT 0 0.
func (s *Store) Count(ctx context.Context, index string, root criteria.Node) (int, error) {
	query, err := buildQuery(root)
	if err != nil {
		return 0, err
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(index, query, "LIMIT", "0", "0", "DIALECT", dialect).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, searchError(db.OpSearch, err)
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

func buildSearchArgs(q *db.SearchQuery) ([]string, error) {
	query, err := buildQuery(q.Criteria)
	if err != nil {
		return nil, err
	}

	args := []string{q.IndexName, query, "WITHSCORES"}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	args = append(args, buildSortArgs(q.Sort)...)
	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", dialect,
	)
	return args, nil
}

// searchError classifies FT.SEARCH / FT.AGGREGATE server errors.
func searchError(op string, err error) error {
	switch {
	case isUnknownIndex(err):
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrIndexNotFound, err)}
	case isRedisErr(err, "syntax error"):
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrUnsupportedQuery, err)}
	default:
		return &db.Error{Op: op, Err: err}
	}
}

// parseScoredResult decodes a WITHSCORES reply:
// [total, key, score, [field, value, ...], key, score, [...], ...].
// A reply that breaks this shape is an error rather than a short page.
func parseScoredResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	rest := raw[1:]
	if len(rest)%3 != 0 {
		return nil, fmt.Errorf("parse search reply: %d trailing elements", len(rest)%3)
	}

	res := &db.SearchResult{Total: int(total), Entries: make([]db.SearchEntry, 0, len(rest)/3)}
	for i := 0; i < len(rest); i += 3 {
		entry, err := parseEntry(rest[i], rest[i+1], rest[i+2])
		if err != nil {
			return nil, fmt.Errorf("parse hit %d: %w", i/3, err)
		}
		res.Entries = append(res.Entries, entry)
	}
	return res, nil
}

func parseEntry(keyMsg, scoreMsg, fieldsMsg rueidis.RedisMessage) (db.SearchEntry, error) {
	key, err := keyMsg.ToString()
	if err != nil {
		return db.SearchEntry{}, fmt.Errorf("key: %w", err)
	}
	score, err := scoreMsg.AsFloat64()
	if err != nil {
		return db.SearchEntry{}, fmt.Errorf("score of %s: %w", key, err)
	}
	fields, err := fieldsMsg.ToArray()
	if err != nil {
		return db.SearchEntry{}, fmt.Errorf("fields of %s: %w", key, err)
	}
	m, err := parseFieldPairs(fields)
	if err != nil {
		return db.SearchEntry{}, fmt.Errorf("fields of %s: %w", key, err)
	}
	return db.SearchEntry{Key: key, Score: score, Fields: m}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) (map[string]string, error) {
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd field list length %d", len(fields))
	}
	m := make(map[string]string, len(fields)/2)
	for j := 0; j < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			return nil, err
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			return nil, err
		}
		m[name] = value
	}
	return m, nil
}
