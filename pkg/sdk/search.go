package shopdex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
)

// SearchService runs catalogue queries. Paged methods take a 0-based page;
// size 0 selects the default page size. List methods return at most the
// server's list cap.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// FullText ranks products matching q in name, description, category or brand.
func (s *SearchService) FullText(ctx context.Context, q string, pageNum, size int) (Page, error) {
	return s.page(ctx, "search_full_text", criteria.FullText(q), pageNum, size)
}

// Keyword ranks active products matching keyword.
func (s *SearchService) Keyword(ctx context.Context, keyword string, pageNum, size int) (Page, error) {
	return s.page(ctx, "search_keyword", criteria.Keyword(keyword), pageNum, size)
}

// Fuzzy tolerates small typos in q.
func (s *SearchService) Fuzzy(ctx context.Context, q string, pageNum, size int) (Page, error) {
	return s.page(ctx, "search_fuzzy", criteria.FuzzyText(q), pageNum, size)
}

// All pages through the whole catalogue.
func (s *SearchService) All(ctx context.Context, pageNum, size int) (Page, error) {
	return s.page(ctx, "search_all", criteria.MatchAll(), pageNum, size)
}

// Advanced combines the optional filters of params over active products.
func (s *SearchService) Advanced(ctx context.Context, params SearchParams, pageNum, size int) (_ Page, err error) {
	start := s.obs.start()
	n := -1
	defer func() { s.obs.observe("search_advanced", start, n, err) }()

	p, err := s.svc.Advanced(ctx, toParams(params), pageNum, s.size(size))
	if err != nil {
		return Page{}, fmt.Errorf("advanced search: %w", err)
	}
	n = p.Len()
	return fromPage(p), nil
}

// ByCategory lists products of a category.
func (s *SearchService) ByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.list(ctx, "list_category", criteria.ByCategory(category))
}

// ByBrand lists products of a brand.
func (s *SearchService) ByBrand(ctx context.Context, brand string) ([]Product, error) {
	return s.list(ctx, "list_brand", criteria.ByBrand(brand))
}

// Featured lists featured products.
func (s *SearchService) Featured(ctx context.Context) ([]Product, error) {
	return s.list(ctx, "list_featured", criteria.FeaturedOnly())
}

// HighRated lists products rated at least minRating.
func (s *SearchService) HighRated(ctx context.Context, minRating float64) ([]Product, error) {
	return s.list(ctx, "list_high_rated", criteria.RatingAtLeast(minRating))
}

// InStock lists products with more than minStock units.
func (s *SearchService) InStock(ctx context.Context, minStock int) ([]Product, error) {
	return s.list(ctx, "list_in_stock", criteria.StockAbove(minStock))
}

// PriceRange lists products priced within [minPrice, maxPrice].
func (s *SearchService) PriceRange(ctx context.Context, minPrice, maxPrice float64) ([]Product, error) {
	return s.list(ctx, "list_price_range", criteria.PriceBetween(minPrice, maxPrice))
}

// ByTags lists products carrying any of tags.
func (s *SearchService) ByTags(ctx context.Context, tags ...string) ([]Product, error) {
	return s.list(ctx, "list_tags", criteria.ByTags(tags...))
}

// Suggest returns completions for a partial name, brand or category.
func (s *SearchService) Suggest(ctx context.Context, input string) (_ []string, err error) {
	start := s.obs.start()
	n := -1
	defer func() { s.obs.observe("suggest", start, n, err) }()

	out, err := s.svc.Suggest(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	n = len(out)
	return out, nil
}

// Count returns the number of products in the catalogue.
func (s *SearchService) Count(ctx context.Context) (_ int64, err error) {
	start := s.obs.start()
	defer func() { s.obs.observe("count", start, -1, err) }()

	n, err := s.svc.Count(ctx, criteria.MatchAll())
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Aggregations summarises facets of the active catalogue.
func (s *SearchService) Aggregations(ctx context.Context) (_ Aggregations, err error) {
	start := s.obs.start()
	defer func() { s.obs.observe("aggregations", start, -1, err) }()

	sum, err := s.svc.Aggregations(ctx)
	if err != nil {
		return Aggregations{}, fmt.Errorf("aggregations: %w", err)
	}
	return fromSummary(sum), nil
}

func (s *SearchService) page(ctx context.Context, op string, q criteria.Query, pageNum, size int) (_ Page, err error) {
	start := s.obs.start()
	n := -1
	defer func() { s.obs.observe(op, start, n, err) }()

	p, err := s.svc.Find(ctx, q, pageNum, s.size(size))
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", op, err)
	}
	n = p.Len()
	return fromPage(p), nil
}

func (s *SearchService) list(ctx context.Context, op string, q criteria.Query) (_ []Product, err error) {
	start := s.obs.start()
	n := -1
	defer func() { s.obs.observe(op, start, n, err) }()

	ps, err := s.svc.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	n = len(ps)
	return fromProducts(ps), nil
}

// size maps 0 to the service default; negatives pass through and fail validation.
func (s *SearchService) size(size int) int {
	if size != 0 {
		return size
	}
	if d, ok := s.svc.(interface{ DefaultPageSize() int }); ok {
		return d.DefaultPageSize()
	}
	return searchuc.DefaultPageSize
}
