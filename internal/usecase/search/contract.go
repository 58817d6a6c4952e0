package search

import (
	"context"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Find(ctx context.Context, q criteria.Query, offset, limit int) ([]domprod.Product, int64, error)
	Fields(ctx context.Context, q criteria.Query, limit int, fields ...string) ([]map[string]string, error)
	Count(ctx context.Context, root criteria.Node) (int64, error)
	Summarize(ctx context.Context, root criteria.Node, opts aggregation.Options) (aggregation.Summary, error)
}
