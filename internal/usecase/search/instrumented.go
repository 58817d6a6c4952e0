package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
	"github.com/kailas-cloud/shopdex/internal/metrics"
)

// DefaultSlowThreshold is the backend latency above which calls are logged as slow.
const DefaultSlowThreshold = 250 * time.Millisecond

// Operation labels.
const (
	opFind      = "find"
	opFields    = "fields"
	opCount     = "count"
	opSummarize = "summarize"
)

// InstrumentedRepository wraps Repository with metrics and logging.
// Errors are passed through unchanged.
type InstrumentedRepository struct {
	inner  Repository
	logger *zap.Logger
	slow   time.Duration
}

// NewInstrumentedRepository wraps a search repository with observability.
func NewInstrumentedRepository(inner Repository, logger *zap.Logger) *InstrumentedRepository {
	return &InstrumentedRepository{inner: inner, logger: logger, slow: DefaultSlowThreshold}
}

// WithSlowThreshold configures the slow-call log threshold.
func (r *InstrumentedRepository) WithSlowThreshold(d time.Duration) *InstrumentedRepository {
	if d > 0 {
		r.slow = d
	}
	return r
}

// Find delegates to the inner repository and records the call.
func (r *InstrumentedRepository) Find(
	ctx context.Context, q criteria.Query, offset, limit int,
) ([]domprod.Product, int64, error) {
	start := time.Now()
	products, total, err := r.inner.Find(ctx, q, offset, limit)
	r.observe(opFind, q.Root(), time.Since(start), len(products), err)
	return products, total, err //nolint:wrapcheck // decorator is transparent
}

// Fields delegates to the inner repository and records the call.
func (r *InstrumentedRepository) Fields(
	ctx context.Context, q criteria.Query, limit int, fields ...string,
) ([]map[string]string, error) {
	start := time.Now()
	rows, err := r.inner.Fields(ctx, q, limit, fields...)
	r.observe(opFields, q.Root(), time.Since(start), len(rows), err)
	return rows, err //nolint:wrapcheck // decorator is transparent
}

// Count delegates to the inner repository and records the call.
func (r *InstrumentedRepository) Count(ctx context.Context, root criteria.Node) (int64, error) {
	start := time.Now()
	n, err := r.inner.Count(ctx, root)
	r.observe(opCount, root, time.Since(start), 0, err)
	return n, err //nolint:wrapcheck // decorator is transparent
}

// Summarize delegates to the inner repository and records the call.
func (r *InstrumentedRepository) Summarize(
	ctx context.Context, root criteria.Node, opts aggregation.Options,
) (aggregation.Summary, error) {
	start := time.Now()
	sum, err := r.inner.Summarize(ctx, root, opts)
	r.observe(opSummarize, root, time.Since(start), 0, err)
	return sum, err //nolint:wrapcheck // decorator is transparent
}

func (r *InstrumentedRepository) observe(op string, root criteria.Node, d time.Duration, results int, err error) {
	metrics.SearchDuration.WithLabelValues(op).Observe(d.Seconds())

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(op, "error").Inc()
		r.logger.Error("Search backend call failed",
			zap.String("operation", op),
			zap.Stringer("criteria", root),
			zap.Duration("duration", d),
			zap.Error(err),
		)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues(op, "ok").Inc()
	if results > 0 {
		metrics.SearchResultsTotal.WithLabelValues(op).Add(float64(results))
	}
	if d >= r.slow {
		r.logger.Warn("Slow search backend call",
			zap.String("operation", op),
			zap.Stringer("criteria", root),
			zap.Duration("duration", d),
			zap.Int("results", results),
		)
	}
}
