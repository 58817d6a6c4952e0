package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain"
	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
)

// store is the consumer interface for products (ISP).
//
//nolint:interfacebloat // product repo needs JSON documents, key scan and index management
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) (bool, error)
	DelMulti(ctx context.Context, keys []string) (int, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
}

// Repo implements usecase/product.Repository.
type Repo struct {
	store     store
	indexName string
	prefix    string
	newID     func() string
}

// New creates a product repository. Documents live under keyPrefix+id and are
// covered by indexName.
func New(s store, indexName, keyPrefix string) *Repo {
	return &Repo{store: s, indexName: indexName, prefix: keyPrefix, newID: uuid.NewString}
}

// Insert assigns an ID and stores the product.
func (r *Repo) Insert(ctx context.Context, p domprod.Product) (domprod.Product, error) {
	p = p.WithID(r.newID())
	key := r.key(p.ID())

	data, err := encode(&p)
	if err != nil {
		return domprod.Product{}, err
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return domprod.Product{}, fmt.Errorf("json.set %s: %w", key, err)
	}
	return p, nil
}

// InsertMany assigns IDs and stores all products in one pipeline.
func (r *Repo) InsertMany(ctx context.Context, ps []domprod.Product) ([]domprod.Product, error) {
	if len(ps) == 0 {
		return nil, nil
	}

	out := make([]domprod.Product, len(ps))
	items := make([]db.JSONSetItem, len(ps))
	for i := range ps {
		out[i] = ps[i].WithID(r.newID())
		data, err := encode(&out[i])
		if err != nil {
			return nil, err
		}
		items[i] = db.JSONSetItem{Key: r.key(out[i].ID()), Path: "$", Data: data}
	}

	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return nil, fmt.Errorf("json.set %d products: %w", len(items), err)
	}
	return out, nil
}

// Get returns a product by ID.
func (r *Repo) Get(ctx context.Context, id string) (domprod.Product, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domprod.Product{}, domain.ErrProductNotFound
		}
		return domprod.Product{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	p, ok, err := decodeJSONPath(raw)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("decode %s: %w", key, err)
	}
	if !ok {
		return domprod.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

// Replace overwrites an existing product.
func (r *Repo) Replace(ctx context.Context, p domprod.Product) error {
	key := r.key(p.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	data, err := encode(&p)
	if err != nil {
		return err
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Delete removes a product.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	deleted, err := r.store.Del(ctx, key)
	if err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if !deleted {
		return domain.ErrProductNotFound
	}
	return nil
}

// DeleteAll removes every product document and returns how many were removed.
// The index itself is kept.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return 0, fmt.Errorf("scan %s*: %w", r.prefix, err)
	}
	n, err := r.store.DelMulti(ctx, keys)
	if err != nil {
		return n, fmt.Errorf("del %d keys: %w", len(keys), err)
	}
	return n, nil
}

// EnsureIndex creates the product index. Returns false if it already existed.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	err := r.store.CreateIndex(ctx, Definition(r.indexName, r.prefix))
	if err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", r.indexName, err)
	}
	return true, nil
}

// DropIndex removes the product index; documents are kept.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.indexName); err != nil {
		return fmt.Errorf("drop index %s: %w", r.indexName, err)
	}
	return nil
}

func (r *Repo) key(id string) string {
	return r.prefix + id
}
