package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain"
	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
	prodrepo "github.com/kailas-cloud/shopdex/internal/repository/product"
)

// docField is the FT.SEARCH field holding the whole JSON document.
const docField = "$"

// Aggregation names.
const (
	aggCategories  = "categories"
	aggBrands      = "brands"
	aggPriceRanges = "price_ranges"
	aggRating      = "average_rating"
	aggStock       = "total_stock"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	Count(ctx context.Context, index string, root criteria.Node) (int, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) (*db.AggregateResult, error)
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store     store
	indexName string
}

// New creates a search repository over the product index.
func New(s store, indexName string) *Repo {
	return &Repo{store: s, indexName: indexName}
}

// Find returns one window of products matching q and the total match count.
func (r *Repo) Find(ctx context.Context, q criteria.Query, offset, limit int) ([]domprod.Product, int64, error) {
	sr, err := r.store.Search(ctx, &db.SearchQuery{
		IndexName: r.indexName,
		Criteria:  q.Root(),
		Sort:      q.Sort(),
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("search %s: %w", r.indexName, mapErr(err))
	}

	products := make([]domprod.Product, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		raw, ok := entry.Fields[docField]
		if !ok {
			return nil, 0, fmt.Errorf("search %s: entry %s has no document", r.indexName, entry.Key)
		}
		p, err := prodrepo.Decode([]byte(raw))
		if err != nil {
			return nil, 0, fmt.Errorf("search %s: entry %s: %w", r.indexName, entry.Key, err)
		}
		products = append(products, p)
	}
	return products, int64(sr.Total), nil
}

// Fields returns selected attributes of the first limit matches.
func (r *Repo) Fields(ctx context.Context, q criteria.Query, limit int, fields ...string) ([]map[string]string, error) {
	sr, err := r.store.Search(ctx, &db.SearchQuery{
		IndexName:    r.indexName,
		Criteria:     q.Root(),
		Sort:         q.Sort(),
		Limit:        limit,
		ReturnFields: fields,
	})
	if err != nil {
		return nil, fmt.Errorf("search fields %s: %w", r.indexName, mapErr(err))
	}

	out := make([]map[string]string, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		out = append(out, entry.Fields)
	}
	return out, nil
}

// Count returns the number of products matching root.
func (r *Repo) Count(ctx context.Context, root criteria.Node) (int64, error) {
	n, err := r.store.Count(ctx, r.indexName, root)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.indexName, mapErr(err))
	}
	return int64(n), nil
}

// Summarize computes facet buckets and catalogue metrics over products matching root.
func (r *Repo) Summarize(ctx context.Context, root criteria.Node, opts aggregation.Options) (aggregation.Summary, error) {
	opts = opts.WithDefaults()
	// One extra group stands in for the empty-value group dropped below.
	termsSize := opts.TermsSize + 1

	res, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: r.indexName,
		Criteria:  root,
		Aggregations: []db.Aggregation{
			{Name: aggCategories, Kind: db.AggTerms, Field: criteria.FieldCategoryKeyword, Size: termsSize},
			{Name: aggBrands, Kind: db.AggTerms, Field: criteria.FieldBrandKeyword, Size: termsSize},
			{Name: aggPriceRanges, Kind: db.AggHistogram, Field: criteria.FieldPrice, Interval: opts.PriceInterval},
			{Name: aggRating, Kind: db.AggAvg, Field: criteria.FieldRating},
			{Name: aggStock, Kind: db.AggSum, Field: criteria.FieldStockQuantity},
		},
	})
	if err != nil {
		return aggregation.Summary{}, fmt.Errorf("aggregate %s: %w", r.indexName, mapErr(err))
	}

	return aggregation.NewSummary(
		termBuckets(res.Buckets[aggCategories], opts.TermsSize),
		termBuckets(res.Buckets[aggBrands], opts.TermsSize),
		toBuckets(res.Buckets[aggPriceRanges]),
		res.Values[aggRating],
		int64(res.Values[aggStock]),
	), nil
}

// IndexExists reports whether the product index is present.
func (r *Repo) IndexExists(ctx context.Context) (bool, error) {
	ok, err := r.store.IndexExists(ctx, r.indexName)
	if err != nil {
		return false, fmt.Errorf("index exists %s: %w", r.indexName, err)
	}
	return ok, nil
}

// termBuckets drops the group of documents without a value (products with
// no brand) and keeps at most size buckets.
func termBuckets(in []db.Bucket, size int) []aggregation.Bucket {
	out := make([]aggregation.Bucket, 0, min(len(in), size))
	for _, b := range in {
		if len(out) == size {
			break
		}
		if b.Key == "" {
			continue
		}
		out = append(out, aggregation.Bucket{Key: b.Key, Count: b.Count})
	}
	return out
}

func toBuckets(in []db.Bucket) []aggregation.Bucket {
	out := make([]aggregation.Bucket, 0, len(in))
	for _, b := range in {
		out = append(out, aggregation.Bucket{Key: b.Key, Count: b.Count})
	}
	return out
}

// mapErr turns backend query rejections into the domain error; everything
// else passes through.
func mapErr(err error) error {
	if errors.Is(err, db.ErrUnsupportedQuery) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	return err
}
