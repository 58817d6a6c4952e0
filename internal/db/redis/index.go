package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/shopdex/internal/db"
)

var fieldKeywords = map[db.IndexFieldType]string{
	db.IndexFieldNumeric: "NUMERIC",
	db.IndexFieldTag:     "TAG",
	db.IndexFieldText:    "TEXT",
}

// CreateIndex issues FT.CREATE for def. An existing index yields db.ErrIndexExists.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := createArgs(def)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	err = s.do(ctx, s.b().Arbitrary("FT.CREATE").Args(args...).Build()).Error()
	switch {
	case err == nil:
		return nil
	case isRedisErr(err, "index already exists"):
		return db.ErrIndexExists
	default:
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
}

// DropIndex removes the index. Product documents stay in place.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	err := s.do(ctx, s.b().Arbitrary("FT.DROPINDEX").Args(name).Build()).Error()
	switch {
	case err == nil:
		return nil
	case isUnknownIndex(err):
		return db.ErrIndexNotFound
	default:
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
}

// IndexExists reports whether FT.INFO knows the index.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	err := s.do(ctx, s.b().Arbitrary("FT.INFO").Args(name).Build()).Error()
	switch {
	case err == nil:
		return true, nil
	case isUnknownIndex(err):
		return false, nil
	default:
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
}

// isUnknownIndex covers the FT.INFO/FT.DROPINDEX and the FT.SEARCH wording.
func isUnknownIndex(err error) bool {
	return isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index")
}

// createArgs renders def as FT.CREATE arguments. Storage defaults to JSON.
func createArgs(def *db.IndexDefinition) ([]string, error) {
	if def == nil {
		return nil, fmt.Errorf("index definition is nil")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	storage := def.StorageType
	if storage == "" {
		storage = db.StorageJSON
	}

	args := make([]string, 0, 8+len(def.Fields)*6)
	args = append(args, def.Name, "ON", string(storage))
	if n := len(def.Prefixes); n > 0 {
		args = append(args, "PREFIX", strconv.Itoa(n))
		args = append(args, def.Prefixes...)
	}
	args = append(args, "SCHEMA")

	for i := range def.Fields {
		fa, err := fieldArgs(&def.Fields[i])
		if err != nil {
			return nil, err
		}
		args = append(args, fa...)
	}
	return args, nil
}

func fieldArgs(f *db.IndexField) ([]string, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("field name is required")
	}
	kw, ok := fieldKeywords[f.Type]
	if !ok {
		return nil, fmt.Errorf("field %s: unknown type %d", f.Key(), f.Type)
	}

	out := []string{f.Name}
	if f.Alias != "" {
		out = append(out, "AS", f.Alias)
	}
	out = append(out, kw)

	switch f.Type {
	case db.IndexFieldText:
		if f.TextWeight > 0 {
			out = append(out, "WEIGHT", strconv.FormatFloat(f.TextWeight, 'g', -1, 64))
		}
	case db.IndexFieldTag:
		if f.TagSeparator != "" {
			out = append(out, "SEPARATOR", f.TagSeparator)
		}
		if f.TagCaseSensitive {
			out = append(out, "CASESENSITIVE")
		}
	}

	if f.Sortable {
		out = append(out, "SORTABLE")
	}
	return out, nil
}
