package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker reports whether the product search index exists.
type IndexChecker interface {
	IndexExists(ctx context.Context) (bool, error)
}
