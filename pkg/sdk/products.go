package shopdex

import (
	"context"
	"fmt"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
)

// ProductService manages catalogue items.
type ProductService struct {
	svc productUseCase
	obs *observer
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (_ Product, err error) {
	start := s.obs.start()
	defer func() { s.obs.observe("product_create", start, -1, err) }()

	p, err := s.svc.Create(ctx, toDraft(in))
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return fromProduct(p), nil
}

// CreateMany validates the whole batch before writing any product.
func (s *ProductService) CreateMany(ctx context.Context, in []ProductInput) (_ []Product, err error) {
	start := s.obs.start()
	defer func() { s.obs.observe("product_create_many", start, -1, err) }()

	drafts := make([]domprod.Draft, len(in))
	for i := range in {
		drafts[i] = toDraft(in[i])
	}
	ps, err := s.svc.CreateMany(ctx, drafts)
	if err != nil {
		return nil, fmt.Errorf("create products: %w", err)
	}
	return fromProducts(ps), nil
}

// Get returns a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (_ Product, err error) {
	start := s.obs.start()
	defer func() { s.obs.observe("product_get", start, -1, err) }()

	p, err := s.svc.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return fromProduct(p), nil
}

// Update replaces a product's fields. CreatedAt is kept.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (_ Product, err error) {
	start := s.obs.start()
	defer func() { s.obs.observe("product_update", start, -1, err) }()

	p, err := s.svc.Update(ctx, id, toDraft(in))
	if err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return fromProduct(p), nil
}

// Delete removes a product by ID.
func (s *ProductService) Delete(ctx context.Context, id string) (err error) {
	start := s.obs.start()
	defer func() { s.obs.observe("product_delete", start, -1, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteAll removes every product and returns how many were deleted.
func (s *ProductService) DeleteAll(ctx context.Context) (_ int, err error) {
	start := s.obs.start()
	defer func() { s.obs.observe("product_delete_all", start, -1, err) }()

	n, err := s.svc.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all products: %w", err)
	}
	return n, nil
}
