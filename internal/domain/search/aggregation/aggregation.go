// Package aggregation holds catalogue facet summaries computed by the search backend.
package aggregation

// Defaults match the storefront facets.
const (
	DefaultTermsSize     = 10
	DefaultPriceInterval = 50.0
)

// Options configures the facet computation.
type Options struct {
	TermsSize     int
	PriceInterval float64
}

// WithDefaults fills zero values.
func (o Options) WithDefaults() Options {
	if o.TermsSize <= 0 {
		o.TermsSize = DefaultTermsSize
	}
	if o.PriceInterval <= 0 {
		o.PriceInterval = DefaultPriceInterval
	}
	return o
}

// Bucket is a facet value with its document count.
type Bucket struct {
	Key   string
	Count int64
}

// Summary aggregates facet buckets and catalogue metrics (immutable value object).
type Summary struct {
	categories      []Bucket
	brands          []Bucket
	priceRanges     []Bucket
	averageRating   float64
	totalStock      int64
	executionTimeMs int64
}

// NewSummary creates a Summary.
func NewSummary(categories, brands, priceRanges []Bucket, averageRating float64, totalStock int64) Summary {
	return Summary{
		categories:    cloneBuckets(categories),
		brands:        cloneBuckets(brands),
		priceRanges:   cloneBuckets(priceRanges),
		averageRating: averageRating,
		totalStock:    totalStock,
	}
}

// WithExecutionTime returns a copy carrying the measured backend time.
func (s Summary) WithExecutionTime(ms int64) Summary {
	s.executionTimeMs = ms
	return s
}

// Categories returns the top categories by count.
func (s Summary) Categories() []Bucket { return cloneBuckets(s.categories) }

// Brands returns the top brands by count.
func (s Summary) Brands() []Bucket { return cloneBuckets(s.brands) }

// PriceRanges returns the price histogram keyed by bucket lower bound.
func (s Summary) PriceRanges() []Bucket { return cloneBuckets(s.priceRanges) }

// AverageRating returns the mean rating.
func (s Summary) AverageRating() float64 { return s.averageRating }

// TotalStock returns the summed stock quantity.
func (s Summary) TotalStock() int64 { return s.totalStock }

// ExecutionTimeMs returns the backend time in milliseconds.
func (s Summary) ExecutionTimeMs() int64 { return s.executionTimeMs }

func cloneBuckets(b []Bucket) []Bucket {
	if b == nil {
		return nil
	}
	c := make([]Bucket, len(b))
	copy(c, b)
	return c
}
