package product

import (
	"context"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
)

// Repository defines the storage contract for products.
type Repository interface {
	Insert(ctx context.Context, p domprod.Product) (domprod.Product, error)
	InsertMany(ctx context.Context, ps []domprod.Product) ([]domprod.Product, error)
	Get(ctx context.Context, id string) (domprod.Product, error)
	Replace(ctx context.Context, p domprod.Product) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
}
