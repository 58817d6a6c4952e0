package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
)

func TestFind(t *testing.T) {
	repo, ms := newTestRepo(t)
	q := criteria.ByCategory("Books")

	ms.searchFn = func(_ context.Context, sq *db.SearchQuery) (*db.SearchResult, error) {
		if sq.IndexName != testIndex {
			t.Errorf("unexpected index: %s", sq.IndexName)
		}
		if sq.Offset != 10 || sq.Limit != 5 {
			t.Errorf("unexpected window: offset=%d limit=%d", sq.Offset, sq.Limit)
		}
		if sq.Criteria.String() != q.Root().String() {
			t.Errorf("unexpected criteria: %s", sq.Criteria)
		}
		return &db.SearchResult{
			Total: 42,
			Entries: []db.SearchEntry{
				{Key: "shopdex:product:1", Score: 1, Fields: map[string]string{
					"$": `{"id":"1","name":"Dune","category":"Books","price":9.5,"active":"true"}`,
				}},
			},
		}, nil
	}

	products, total, err := repo.Find(context.Background(), q, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 42 {
		t.Errorf("total = %d, want 42", total)
	}
	if len(products) != 1 || products[0].ID() != "1" || products[0].Name() != "Dune" || !products[0].Active() {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestFind_MissingDocument(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(context.Context, *db.SearchQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{{Key: "k", Fields: map[string]string{}}}}, nil
	}

	if _, _, err := repo.Find(context.Background(), criteria.MatchAll(), 0, 10); err == nil {
		t.Fatal("expected error for entry without document")
	}
}

func TestFind_UnsupportedQueryIsInvalidQuery(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(context.Context, *db.SearchQuery) (*db.SearchResult, error) {
		return nil, db.ErrUnsupportedQuery
	}

	_, _, err := repo.Find(context.Background(), criteria.MatchAll(), 0, 10)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
	if !errors.Is(err, db.ErrUnsupportedQuery) {
		t.Errorf("original cause must be kept, got %v", err)
	}
}

func TestFind_BackendErrorPropagates(t *testing.T) {
	repo, ms := newTestRepo(t)
	boom := &db.Error{Op: db.OpSearch, Err: errors.New("connection reset")}
	ms.searchFn = func(context.Context, *db.SearchQuery) (*db.SearchResult, error) { return nil, boom }

	_, _, err := repo.Find(context.Background(), criteria.MatchAll(), 0, 10)
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected db.Error in chain, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidQuery) {
		t.Error("backend failure must not become ErrInvalidQuery")
	}
}

func TestFields(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(_ context.Context, sq *db.SearchQuery) (*db.SearchResult, error) {
		if len(sq.ReturnFields) != 2 || sq.ReturnFields[0] != "name" || sq.Limit != 10 {
			t.Errorf("unexpected query: %+v", sq)
		}
		return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{
			{Key: "k", Fields: map[string]string{"name": "iPhone", "brand": "Apple"}},
		}}, nil
	}

	rows, err := repo.Fields(context.Background(), criteria.Suggest("ip"), 10, "name", "brand")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0]["brand"] != "Apple" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestCount(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.countFn = func(_ context.Context, index string, _ criteria.Node) (int, error) {
		if index != testIndex {
			t.Errorf("unexpected index: %s", index)
		}
		return 7, nil
	}

	n, err := repo.Count(context.Background(), criteria.ActiveOnly().Root())
	if err != nil || n != 7 {
		t.Fatalf("Count() = %d, %v", n, err)
	}
}

func TestSummarize(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.aggregateFn = func(_ context.Context, q *db.AggregateQuery) (*db.AggregateResult, error) {
		if len(q.Aggregations) != 5 {
			t.Fatalf("aggregations = %d, want 5", len(q.Aggregations))
		}
		if q.Aggregations[0].Size != aggregation.DefaultTermsSize+1 {
			t.Errorf("terms size = %d, want default+1", q.Aggregations[0].Size)
		}
		if q.Aggregations[2].Interval != 25 {
			t.Errorf("interval = %v, want 25", q.Aggregations[2].Interval)
		}
		return &db.AggregateResult{
			Buckets: map[string][]db.Bucket{
				aggCategories:  {{Key: "Books", Count: 3}},
				aggBrands:      {{Key: "Acme", Count: 2}, {Key: "", Count: 1}},
				aggPriceRanges: {{Key: "0", Count: 1}, {Key: "25", Count: 2}},
			},
			Values: map[string]float64{aggRating: 4.5, aggStock: 120},
		}, nil
	}

	s, err := repo.Summarize(context.Background(), criteria.ActiveOnly().Root(), aggregation.Options{PriceInterval: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Categories()) != 1 || s.Categories()[0].Key != "Books" {
		t.Errorf("categories = %v", s.Categories())
	}
	if len(s.Brands()) != 1 {
		t.Errorf("empty brand bucket must be dropped, got %v", s.Brands())
	}
	if len(s.PriceRanges()) != 2 {
		t.Errorf("price ranges = %v", s.PriceRanges())
	}
	if s.AverageRating() != 4.5 || s.TotalStock() != 120 {
		t.Errorf("metrics = %v / %d", s.AverageRating(), s.TotalStock())
	}
}

func TestSummarize_TermsSizeIgnoresEmptyGroup(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.aggregateFn = func(_ context.Context, q *db.AggregateQuery) (*db.AggregateResult, error) {
		if q.Aggregations[1].Size != 3 {
			t.Errorf("brands size = %d, want 3", q.Aggregations[1].Size)
		}
		return &db.AggregateResult{
			Buckets: map[string][]db.Bucket{
				aggCategories: {{Key: "A", Count: 9}, {Key: "B", Count: 5}, {Key: "C", Count: 1}},
				aggBrands:     {{Key: "", Count: 7}, {Key: "Acme", Count: 4}, {Key: "Zeta", Count: 2}},
			},
		}, nil
	}

	s, err := repo.Summarize(context.Background(), criteria.All(), aggregation.Options{TermsSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Brands(); len(got) != 2 || got[0].Key != "Acme" || got[1].Key != "Zeta" {
		t.Errorf("brands = %v, want Acme and Zeta", got)
	}
	if got := s.Categories(); len(got) != 2 || got[1].Key != "B" {
		t.Errorf("categories = %v, want top 2", got)
	}
}

func TestSummarize_Error(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.aggregateFn = func(context.Context, *db.AggregateQuery) (*db.AggregateResult, error) {
		return nil, errors.New("boom")
	}

	if _, err := repo.Summarize(context.Background(), criteria.All(), aggregation.Options{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestIndexExists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexExistsFn = func(_ context.Context, name string) (bool, error) { return name == testIndex, nil }

	ok, err := repo.IndexExists(context.Background())
	if err != nil || !ok {
		t.Fatalf("IndexExists() = %v, %v", ok, err)
	}
}
