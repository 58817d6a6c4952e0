package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckMissing indicates the search index has not been created.
	CheckMissing CheckResult = "missing"
)

// Component names.
const (
	ComponentDatabase = "database"
	ComponentIndex    = "search_index"
)

// DefaultProbeTimeout bounds each component probe.
const DefaultProbeTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Healthy reports whether every component passed.
func (r Report) Healthy() bool { return r.Status == Healthy }

// Service probes the backend and the product index.
type Service struct {
	db      DBPinger
	index   IndexChecker
	timeout time.Duration
}

// New creates a Service. index can be nil.
func New(db DBPinger, index IndexChecker) *Service {
	return &Service{db: db, index: index, timeout: DefaultProbeTimeout}
}

// WithProbeTimeout overrides the per-probe deadline. Non-positive values are ignored.
func (s *Service) WithProbeTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check probes the database, then the index. A down database marks the index
// as failed without probing it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	dbOK := s.probe(ctx, func(ctx context.Context) error { return s.db.Ping(ctx) })
	checks[ComponentDatabase] = result(dbOK, true)

	if s.index != nil {
		if !dbOK {
			checks[ComponentIndex] = CheckError
		} else {
			var exists bool
			ok := s.probe(ctx, func(ctx context.Context) error {
				var err error
				exists, err = s.index.IndexExists(ctx)
				return err
			})
			checks[ComponentIndex] = result(ok, exists)
		}
	}

	r := Report{Status: Healthy, Checks: checks}
	for _, v := range checks {
		if v != CheckOK {
			r.Status = Degraded
			break
		}
	}
	return r
}

func (s *Service) probe(ctx context.Context, fn func(context.Context) error) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(ctx) == nil
}

func result(ok, present bool) CheckResult {
	switch {
	case !ok:
		return CheckError
	case !present:
		return CheckMissing
	default:
		return CheckOK
	}
}
