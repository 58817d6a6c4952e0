package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
	healthuc "github.com/kailas-cloud/shopdex/internal/usecase/health"
	productuc "github.com/kailas-cloud/shopdex/internal/usecase/product"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
)

// mockProductRepo is a func-field mock for usecase/product.Repository.
type mockProductRepo struct {
	insertFn     func(ctx context.Context, p domprod.Product) (domprod.Product, error)
	insertManyFn func(ctx context.Context, ps []domprod.Product) ([]domprod.Product, error)
	getFn        func(ctx context.Context, id string) (domprod.Product, error)
	replaceFn    func(ctx context.Context, p domprod.Product) error
	deleteFn     func(ctx context.Context, id string) error
	deleteAllFn  func(ctx context.Context) (int, error)
}

func (m *mockProductRepo) Insert(ctx context.Context, p domprod.Product) (domprod.Product, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, p)
	}
	return p.WithID("p-1"), nil
}

func (m *mockProductRepo) InsertMany(ctx context.Context, ps []domprod.Product) ([]domprod.Product, error) {
	if m.insertManyFn != nil {
		return m.insertManyFn(ctx, ps)
	}
	return ps, nil
}

func (m *mockProductRepo) Get(ctx context.Context, id string) (domprod.Product, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return testProduct(id), nil
}

func (m *mockProductRepo) Replace(ctx context.Context, p domprod.Product) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, p)
	}
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProductRepo) DeleteAll(ctx context.Context) (int, error) {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx)
	}
	return 0, nil
}

// mockSearchRepo is a func-field mock for usecase/search.Repository that
// records the last query it saw.
type mockSearchRepo struct {
	findFn      func(ctx context.Context, q criteria.Query, offset, limit int) ([]domprod.Product, int64, error)
	fieldsFn    func(ctx context.Context, q criteria.Query, limit int, fields ...string) ([]map[string]string, error)
	summarizeFn func(ctx context.Context, root criteria.Node, opts aggregation.Options) (aggregation.Summary, error)

	lastQuery  criteria.Query
	lastOffset int
	lastLimit  int
}

func (m *mockSearchRepo) Find(ctx context.Context, q criteria.Query, offset, limit int) ([]domprod.Product, int64, error) {
	m.lastQuery, m.lastOffset, m.lastLimit = q, offset, limit
	if m.findFn != nil {
		return m.findFn(ctx, q, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockSearchRepo) Fields(
	ctx context.Context, q criteria.Query, limit int, fields ...string,
) ([]map[string]string, error) {
	m.lastQuery, m.lastLimit = q, limit
	if m.fieldsFn != nil {
		return m.fieldsFn(ctx, q, limit, fields...)
	}
	return nil, nil
}

func (m *mockSearchRepo) Count(_ context.Context, _ criteria.Node) (int64, error) {
	return 0, nil
}

func (m *mockSearchRepo) Summarize(
	ctx context.Context, root criteria.Node, opts aggregation.Options,
) (aggregation.Summary, error) {
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx, root, opts)
	}
	return aggregation.Summary{}, nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockIndex struct{ exists bool }

func (m *mockIndex) IndexExists(_ context.Context) (bool, error) { return m.exists, nil }

type testEnv struct {
	products *mockProductRepo
	search   *mockSearchRepo
	pinger   *mockPinger
	index    *mockIndex
	logs     *observer.ObservedLogs
	handler  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		products: &mockProductRepo{},
		search:   &mockSearchRepo{},
		pinger:   &mockPinger{},
		index:    &mockIndex{exists: true},
	}
	core, logs := observer.New(zapcore.DebugLevel)
	env.logs = logs
	srv := NewServer(
		productuc.New(env.products).WithMaxBatchSize(3),
		searchuc.New(env.search).WithPagination(10, 100),
		healthuc.New(env.pinger, env.index),
		zap.New(core),
	)
	env.handler = NewRouter(srv, RouterOptions{})
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			r = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, r)
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code ErrorCode) ErrorResponse {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	resp := decode[ErrorResponse](t, rr)
	if resp.Code != code {
		t.Errorf("error code: got %s, want %s", resp.Code, code)
	}
	return resp
}

func testProduct(id string) domprod.Product {
	return domprod.Reconstruct(id, "Phone", "A phone", "Electronics", "Acme",
		[]string{"mobile"}, 199.5, 3, 4.5, 10, true, false, 1_700_000_000_000, 1_700_000_000_000)
}
