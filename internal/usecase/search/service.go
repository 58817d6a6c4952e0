package search

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
	"github.com/kailas-cloud/shopdex/internal/domain/search/page"
	"github.com/kailas-cloud/shopdex/internal/logger"
)

// Defaults.
const (
	DefaultPageSize        = 10
	MaxPageSize            = 100
	DefaultMaxListSize     = 1000
	DefaultSuggestionLimit = 10
	// MinSuggestInput is the shortest input that produces suggestions.
	MinSuggestInput = 2
)

// ProductPage is one page of products.
type ProductPage = page.Page[domprod.Product]

// Service runs catalogue searches and facet summaries.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
	maxListSize     int
	suggestionLimit int
	aggregation     aggregation.Options
	now             func() time.Time
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{
		repo:            repo,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
		maxListSize:     DefaultMaxListSize,
		suggestionLimit: DefaultSuggestionLimit,
		aggregation:     aggregation.Options{}.WithDefaults(),
		now:             time.Now,
	}
}

// WithPagination configures default and max page sizes.
func (s *Service) WithPagination(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// WithMaxListSize caps the length of non-paged listings.
func (s *Service) WithMaxListSize(n int) *Service {
	if n > 0 {
		s.maxListSize = n
	}
	return s
}

// WithSuggestionLimit caps the number of suggestions returned.
func (s *Service) WithSuggestionLimit(n int) *Service {
	if n > 0 {
		s.suggestionLimit = n
	}
	return s
}

// WithAggregation configures facet sizes.
func (s *Service) WithAggregation(opts aggregation.Options) *Service {
	s.aggregation = opts.WithDefaults()
	return s
}

// WithClock overrides the time source used for searchTimeMs.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// DefaultPageSize returns the page size used when the caller sets none.
func (s *Service) DefaultPageSize() int { return s.defaultPageSize }

// Find runs q and returns page pageNum (0-based). Sizes above the maximum are clamped.
func (s *Service) Find(ctx context.Context, q criteria.Query, pageNum, size int) (ProductPage, error) {
	if err := page.ValidateSize(size); err != nil {
		return ProductPage{}, err
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}
	if pageNum < 0 {
		pageNum = 0
	}
	if err := page.ValidateWindow(pageNum, size); err != nil {
		return ProductPage{}, err
	}

	start := s.now()
	products, total, err := s.repo.Find(ctx, q, page.Offset(pageNum, size), size)
	if err != nil {
		return ProductPage{}, fmt.Errorf("find: %w", err)
	}
	took := s.now().Sub(start).Milliseconds()

	logger.FromContext(ctx).Debug("Search completed",
		zap.Stringer("criteria", q.Root()),
		zap.Int("page", pageNum),
		zap.Int("size", size),
		zap.Int64("total", total),
		zap.Int64("took_ms", took),
	)

	p, err := page.New(products, total, pageNum, size, took)
	if err != nil {
		return ProductPage{}, fmt.Errorf("build page: %w", err)
	}
	return p, nil
}

// Advanced builds criteria from user parameters and runs Find.
func (s *Service) Advanced(ctx context.Context, params criteria.Params, pageNum, size int) (ProductPage, error) {
	return s.Find(ctx, criteria.Build(params), pageNum, size)
}

// List returns up to the configured list size of products matching q.
func (s *Service) List(ctx context.Context, q criteria.Query) ([]domprod.Product, error) {
	products, _, err := s.repo.Find(ctx, q, 0, s.maxListSize)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return products, nil
}

// Count returns the number of products matching q.
func (s *Service) Count(ctx context.Context, q criteria.Query) (int64, error) {
	n, err := s.repo.Count(ctx, q.Root())
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Suggest returns autocomplete values from product names, brands and
// categories that start with input (case-insensitive), without duplicates.
func (s *Service) Suggest(ctx context.Context, input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if utf8.RuneCountInString(input) < MinSuggestInput {
		return []string{}, nil
	}

	rows, err := s.repo.Fields(ctx, criteria.Suggest(input), s.suggestionLimit,
		criteria.FieldName, criteria.FieldBrand, criteria.FieldCategory)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	prefix := strings.ToLower(input)
	seen := make(map[string]bool)
	out := make([]string, 0, s.suggestionLimit)
	for _, row := range rows {
		for _, f := range []string{criteria.FieldName, criteria.FieldBrand, criteria.FieldCategory} {
			v := row[f]
			if v == "" || seen[v] || !strings.HasPrefix(strings.ToLower(v), prefix) {
				continue
			}
			seen[v] = true
			out = append(out, v)
			if len(out) == s.suggestionLimit {
				return out, nil
			}
		}
	}
	return out, nil
}

// Aggregations summarises facets over active products.
func (s *Service) Aggregations(ctx context.Context) (aggregation.Summary, error) {
	start := s.now()
	sum, err := s.repo.Summarize(ctx, criteria.ActiveOnly().Root(), s.aggregation)
	if err != nil {
		return aggregation.Summary{}, fmt.Errorf("aggregations: %w", err)
	}
	return sum.WithExecutionTime(s.now().Sub(start).Milliseconds()), nil
}
