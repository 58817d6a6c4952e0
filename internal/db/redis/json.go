package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/shopdex/internal/db"
)

// rootPath is used when a write names no path.
const rootPath = "$"

func (s *Store) jsonSetCmd(key, path string, data []byte) rueidis.Completed {
	if path == "" {
		path = rootPath
	}
	return s.b().Arbitrary("JSON.SET").Keys(key).Args(path, string(data)).Build()
}

// JSONSet writes a document (or a sub-path of one) at key.
func (s *Store) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if err := s.do(ctx, s.jsonSetCmd(key, path, data)).Error(); err != nil {
		return &db.Error{Op: db.OpJSONSet, Err: fmt.Errorf("key %s: %w", key, err)}
	}
	return nil
}

// JSONSetMulti pipelines the writes in one round-trip. Items after a failed
// one may still have been applied; the first failure is reported.
func (s *Store) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	if len(items) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, 0, len(items))
	for _, it := range items {
		cmds = append(cmds, s.jsonSetCmd(it.Key, it.Path, it.Data))
	}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpJSONSet, Err: fmt.Errorf("key %s: %w", items[i].Key, err)}
		}
	}
	return nil
}

// JSONGet reads the document at key. A missing key, or a JSONPath query that
// selects nothing, is db.ErrKeyNotFound.
func (s *Store) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	raw, err := s.do(ctx, s.b().Arbitrary("JSON.GET").Keys(key).Args(paths...).Build()).ToString()
	switch {
	case rueidis.IsRedisNil(err):
		return nil, db.ErrKeyNotFound
	case err != nil:
		return nil, &db.Error{Op: db.OpJSONGet, Err: fmt.Errorf("key %s: %w", key, err)}
	case raw == "" || raw == "[]":
		return nil, db.ErrKeyNotFound
	}
	return []byte(raw), nil
}
