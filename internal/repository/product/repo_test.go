package product

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain"
	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	c "github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
)

// --- Insert ---

func TestInsert_AssignsIDAndStores(t *testing.T) {
	repo, ms := newTestRepo(t)
	var stored map[string]any

	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		if key != "shopdex:product:id-1" {
			t.Errorf("unexpected key: %s", key)
		}
		if path != "$" {
			t.Errorf("unexpected path: %s", path)
		}
		return json.Unmarshal(data, &stored)
	}

	p, err := repo.Insert(context.Background(), testProduct(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != "id-1" {
		t.Errorf("ID = %q, want id-1", p.ID())
	}
	if stored["id"] != "id-1" || stored["category"] != "Electronics" {
		t.Errorf("unexpected document: %v", stored)
	}
	if stored["active"] != "true" || stored["featured"] != "true" {
		t.Errorf("flags must be stored as tag strings, got %v / %v", stored["active"], stored["featured"])
	}
	if stored["stock_quantity"] != float64(12) {
		t.Errorf("stock_quantity = %v", stored["stock_quantity"])
	}
}

func TestInsert_DefaultIDIsUUID(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, testIndex, testPrefix)

	p, err := repo.Insert(context.Background(), testProduct(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.ID()) != 36 {
		t.Errorf("expected UUID, got %q", p.ID())
	}
}

func TestInsert_Error(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonSetFn = func(context.Context, string, string, []byte) error { return errors.New("OOM") }

	if _, err := repo.Insert(context.Background(), testProduct(t)); err == nil {
		t.Fatal("expected error on JSON.SET failure")
	}
}

// --- InsertMany ---

func TestInsertMany(t *testing.T) {
	repo, ms := newTestRepo(t)
	var keys []string
	ms.jsonSetMultiFn = func(_ context.Context, items []db.JSONSetItem) error {
		for _, it := range items {
			keys = append(keys, it.Key)
		}
		return nil
	}

	out, err := repo.InsertMany(context.Background(), []domprod.Product{testProduct(t), testProduct(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].ID() != "id-1" || out[1].ID() != "id-2" {
		t.Errorf("unexpected ids: %v, %v", out[0].ID(), out[1].ID())
	}
	if len(keys) != 2 || keys[1] != "shopdex:product:id-2" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestInsertMany_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonSetMultiFn = func(context.Context, []db.JSONSetItem) error {
		t.Fatal("store must not be called")
		return nil
	}
	if out, err := repo.InsertMany(context.Background(), nil); err != nil || out != nil {
		t.Fatalf("InsertMany(nil) = %v, %v", out, err)
	}
}

// --- Get ---

func TestGet_Found(t *testing.T) {
	repo, ms := newTestRepo(t)
	p := testProduct(t).WithID("abc")
	doc, err := encode(&p)
	if err != nil {
		t.Fatal(err)
	}

	ms.jsonGetFn = func(_ context.Context, key string, paths ...string) ([]byte, error) {
		if key != "shopdex:product:abc" || len(paths) != 1 || paths[0] != "$" {
			t.Errorf("unexpected JSON.GET %s %v", key, paths)
		}
		return []byte("[" + string(doc) + "]"), nil
	}

	got, err := repo.Get(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != "abc" || got.Name() != "Pixel 9" || !got.Featured() || !got.Active() {
		t.Errorf("unexpected product: %+v", got)
	}
	if len(got.Tags()) != 2 || got.CreatedAt() != p.CreatedAt() {
		t.Errorf("round trip lost data: tags=%v createdAt=%d", got.Tags(), got.CreatedAt())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGet_EmptyArray(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(context.Context, string, ...string) ([]byte, error) { return []byte("[]"), nil }

	_, err := repo.Get(context.Background(), "x")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGet_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(context.Context, string, ...string) ([]byte, error) {
		return nil, &db.Error{Op: db.OpJSONGet, Err: errors.New("timeout")}
	}

	_, err := repo.Get(context.Background(), "x")
	if err == nil || errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

// --- Replace ---

func TestReplace_Missing(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonSetFn = func(context.Context, string, string, []byte) error {
		t.Fatal("JSON.SET must not run for a missing product")
		return nil
	}

	err := repo.Replace(context.Background(), testProduct(t).WithID("abc"))
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestReplace_Existing(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.existsFn = func(context.Context, string) (bool, error) { return true, nil }
	called := false
	ms.jsonSetFn = func(_ context.Context, key, _ string, _ []byte) error {
		called = key == "shopdex:product:abc"
		return nil
	}

	if err := repo.Replace(context.Background(), testProduct(t).WithID("abc")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected JSON.SET on product key")
	}
}

// --- Delete ---

func TestDelete(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.delFn = func(_ context.Context, key string) (bool, error) { return key == "shopdex:product:abc", nil }

	if err := repo.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), "other"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "shopdex:product:*" {
			t.Errorf("unexpected pattern: %s", pattern)
		}
		return []string{"shopdex:product:a", "shopdex:product:b"}, nil
	}

	n, err := repo.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
}

func TestDeleteAll_ScanError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.scanFn = func(context.Context, string) ([]string, error) { return nil, errors.New("boom") }

	if _, err := repo.DeleteAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

// --- Index ---

func TestEnsureIndex(t *testing.T) {
	repo, ms := newTestRepo(t)
	var got *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		got = def
		return nil
	}

	created, err := repo.EnsureIndex(context.Background())
	if err != nil || !created {
		t.Fatalf("EnsureIndex() = %v, %v", created, err)
	}
	if got.Name != testIndex || got.StorageType != db.StorageJSON || got.Prefixes[0] != testPrefix {
		t.Errorf("unexpected definition: %s", got)
	}
}

func TestDefinition_KeywordsIndexedWhole(t *testing.T) {
	def := Definition(testIndex, testPrefix)

	for _, key := range []string{
		c.FieldNameKeyword, c.FieldCategoryKeyword, c.FieldBrandKeyword, c.FieldTags,
	} {
		f, ok := def.Field(key)
		if !ok {
			t.Fatalf("field %s missing", key)
		}
		if f.Type != db.IndexFieldTag {
			t.Errorf("%s: type = %v, want TAG", key, f.Type)
		}
		if f.TagSeparator != KeywordSeparator {
			t.Errorf("%s: separator = %q, want %q", key, f.TagSeparator, KeywordSeparator)
		}
	}
}

func TestEnsureIndex_AlreadyExists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.createIndexFn = func(context.Context, *db.IndexDefinition) error { return db.ErrIndexExists }

	created, err := repo.EnsureIndex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false")
	}
}

func TestDropIndex_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.dropIndexFn = func(context.Context, string) error { return db.ErrIndexNotFound }

	if err := repo.DropIndex(context.Background()); !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestDefinition_KeywordTwins(t *testing.T) {
	def := Definition(testIndex, testPrefix)
	for _, key := range []string{"name_kw", "category_kw", "brand_kw"} {
		f, ok := def.Field(key)
		if !ok {
			t.Fatalf("missing %s", key)
		}
		if f.Type != db.IndexFieldTag || !f.TagCaseSensitive || !f.Sortable {
			t.Errorf("%s = %+v, want case-sensitive sortable TAG", key, f)
		}
	}
	if f, _ := def.Field("price"); f.Type != db.IndexFieldNumeric || !f.Sortable {
		t.Errorf("price = %+v", f)
	}
	if f, _ := def.Field("tags"); f.Name != "$.tags[*]" {
		t.Errorf("tags path = %q", f.Name)
	}
}

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(`{"id":"x","name":"A","category":"C","price":1.5,"active":"false","tags":["t"]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != "x" || p.Active() || p.Price() != 1.5 || p.Tags()[0] != "t" {
		t.Errorf("unexpected product: %+v", p)
	}
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("expected error for malformed document")
	}
}
