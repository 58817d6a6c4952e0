package product

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/shopdex/internal/domain"
	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
)

// MaxBatchSize is the default maximum number of products per bulk request.
const MaxBatchSize = 500

// Service handles product lifecycle operations.
type Service struct {
	repo         Repository
	now          func() time.Time
	maxBatchSize int
}

// New creates a product service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum bulk size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, d domprod.Draft) (domprod.Product, error) {
	p, err := domprod.New(d, s.now())
	if err != nil {
		return domprod.Product{}, err
	}

	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

// CreateMany validates every draft before writing any of them.
func (s *Service) CreateMany(ctx context.Context, drafts []domprod.Draft) ([]domprod.Product, error) {
	if len(drafts) > s.maxBatchSize {
		return nil, fmt.Errorf("%d products exceeds limit %d: %w",
			len(drafts), s.maxBatchSize, domain.ErrBatchTooLarge)
	}
	if len(drafts) == 0 {
		return []domprod.Product{}, nil
	}

	now := s.now()
	ps := make([]domprod.Product, len(drafts))
	for i, d := range drafts {
		p, err := domprod.New(d, now)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		ps[i] = p
	}

	created, err := s.repo.InsertMany(ctx, ps)
	if err != nil {
		return nil, fmt.Errorf("insert products: %w", err)
	}
	return created, nil
}

// Get returns a product by ID.
func (s *Service) Get(ctx context.Context, id string) (domprod.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update replaces an existing product. ID and createdAt are kept.
func (s *Service) Update(ctx context.Context, id string, d domprod.Draft) (domprod.Product, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("get product: %w", err)
	}

	next, err := current.Revise(d, s.now())
	if err != nil {
		return domprod.Product{}, err
	}

	if err := s.repo.Replace(ctx, next); err != nil {
		return domprod.Product{}, fmt.Errorf("replace product: %w", err)
	}
	return next, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteAll removes every product and returns how many were removed.
func (s *Service) DeleteAll(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return n, fmt.Errorf("delete all products: %w", err)
	}
	return n, nil
}
