package shopdex

import (
	"context"
	"testing"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
	"github.com/kailas-cloud/shopdex/internal/domain/search/page"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
)

// --- productUseCase mock ---

type mockProductUC struct {
	createFn     func(ctx context.Context, d domprod.Draft) (domprod.Product, error)
	createManyFn func(ctx context.Context, drafts []domprod.Draft) ([]domprod.Product, error)
	getFn        func(ctx context.Context, id string) (domprod.Product, error)
	updateFn     func(ctx context.Context, id string, d domprod.Draft) (domprod.Product, error)
	deleteFn     func(ctx context.Context, id string) error
	deleteAllFn  func(ctx context.Context) (int, error)
}

func (m *mockProductUC) Create(ctx context.Context, d domprod.Draft) (domprod.Product, error) {
	return m.createFn(ctx, d)
}

func (m *mockProductUC) CreateMany(ctx context.Context, drafts []domprod.Draft) ([]domprod.Product, error) {
	return m.createManyFn(ctx, drafts)
}

func (m *mockProductUC) Get(ctx context.Context, id string) (domprod.Product, error) {
	return m.getFn(ctx, id)
}

func (m *mockProductUC) Update(ctx context.Context, id string, d domprod.Draft) (domprod.Product, error) {
	return m.updateFn(ctx, id, d)
}

func (m *mockProductUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockProductUC) DeleteAll(ctx context.Context) (int, error) {
	return m.deleteAllFn(ctx)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	findFn         func(ctx context.Context, q criteria.Query, pageNum, size int) (searchuc.ProductPage, error)
	advancedFn     func(ctx context.Context, p criteria.Params, pageNum, size int) (searchuc.ProductPage, error)
	listFn         func(ctx context.Context, q criteria.Query) ([]domprod.Product, error)
	countFn        func(ctx context.Context, q criteria.Query) (int64, error)
	suggestFn      func(ctx context.Context, input string) ([]string, error)
	aggregationsFn func(ctx context.Context) (aggregation.Summary, error)
}

func (m *mockSearchUC) Find(ctx context.Context, q criteria.Query, pageNum, size int) (searchuc.ProductPage, error) {
	return m.findFn(ctx, q, pageNum, size)
}

func (m *mockSearchUC) Advanced(
	ctx context.Context, p criteria.Params, pageNum, size int,
) (searchuc.ProductPage, error) {
	return m.advancedFn(ctx, p, pageNum, size)
}

func (m *mockSearchUC) List(ctx context.Context, q criteria.Query) ([]domprod.Product, error) {
	return m.listFn(ctx, q)
}

func (m *mockSearchUC) Count(ctx context.Context, q criteria.Query) (int64, error) {
	return m.countFn(ctx, q)
}

func (m *mockSearchUC) Suggest(ctx context.Context, input string) ([]string, error) {
	return m.suggestFn(ctx, input)
}

func (m *mockSearchUC) Aggregations(ctx context.Context) (aggregation.Summary, error) {
	return m.aggregationsFn(ctx)
}

// --- indexManager mock ---

type mockIndex struct {
	ensureFn func(ctx context.Context) (bool, error)
	dropFn   func(ctx context.Context) error
}

func (m *mockIndex) EnsureIndex(ctx context.Context) (bool, error) { return m.ensureFn(ctx) }
func (m *mockIndex) DropIndex(ctx context.Context) error { return m.dropFn(ctx) }

// --- helpers ---

func testProduct(id, name string) domprod.Product {
	return domprod.Reconstruct(
		id, name, "desc", "Audio", "Sony", []string{"wireless"},
		99.5, 3, 4.5, 10, true, false, 1700000000000, 1700000001000,
	)
}

func testPage(t *testing.T, total int64, pageNum, size int, ps ...domprod.Product) searchuc.ProductPage {
	t.Helper()
	p, err := page.New(ps, total, pageNum, size, 4)
	if err != nil {
		t.Fatalf("page.New: %v", err)
	}
	return p
}
