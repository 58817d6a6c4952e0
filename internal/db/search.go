package db

import "github.com/kailas-cloud/shopdex/internal/domain/search/criteria"

// SearchQuery is the input for a criteria search.
type SearchQuery struct {
	IndexName    string
	Criteria     criteria.Node
	Sort         []criteria.SortKey
	Offset       int
	Limit        int
	ReturnFields []string // empty returns the whole document
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
