package db

import "github.com/kailas-cloud/shopdex/internal/domain/search/criteria"

// AggregationKind selects the reducer of an aggregation.
type AggregationKind int

const (
	// AggTerms groups by a tag field and counts, top Size by count.
	AggTerms AggregationKind = iota
	// AggHistogram buckets a numeric field by a fixed Interval.
	AggHistogram
	// AggAvg averages a numeric field.
	AggAvg
	// AggSum sums a numeric field.
	AggSum
)

// DefaultHistogramBuckets is the bucket cap of a histogram without Size.
const DefaultHistogramBuckets = 1000

// Aggregation is one named reducer over the matched documents.
type Aggregation struct {
	Name     string
	Kind     AggregationKind
	Field    string
	Size     int     // AggTerms; AggHistogram bucket cap, DefaultHistogramBuckets when zero
	Interval float64 // AggHistogram
}

// AggregateQuery is the input for FT.AGGREGATE.
type AggregateQuery struct {
	IndexName    string
	Criteria     criteria.Node
	Aggregations []Aggregation
}

// Bucket is a single group of a terms or histogram aggregation.
type Bucket struct {
	Key   string
	Count int64
}

// AggregateResult holds results keyed by aggregation name.
type AggregateResult struct {
	Buckets map[string][]Bucket // AggTerms, AggHistogram
	Values  map[string]float64  // AggAvg, AggSum
}
