package chi

import (
	"time"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
)

// ErrorCode is the machine-readable error identifier in error responses.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeInvalidPageSize  ErrorCode = "invalid_page_size"
	ErrorCodePageOutOfRange   ErrorCode = "page_out_of_range"
	ErrorCodeInvalidQuery     ErrorCode = "invalid_query"
	ErrorCodeBatchTooLarge    ErrorCode = "batch_too_large"
	ErrorCodeProductNotFound  ErrorCode = "product_not_found"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ProductRequest is the create/update body. Omitted active/featured use defaults.
type ProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	Tags          []string `json:"tags"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Active        *bool    `json:"active"`
	Featured      *bool    `json:"featured"`
}

// Product is the external product representation.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	Tags          []string  `json:"tags"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	Active        bool      `json:"active"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PageResponse is one page of products.
type PageResponse struct {
	Content       []Product `json:"content"`
	TotalElements int64     `json:"totalElements"`
	CurrentPage   int       `json:"currentPage"`
	Size          int       `json:"size"`
	TotalPages    int       `json:"totalPages"`
	SearchTimeMs  int64     `json:"searchTimeMs"`
}

// Bucket is a facet value with its product count.
type Bucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// AggregationsResponse is the facet summary.
type AggregationsResponse struct {
	Categories      []Bucket `json:"categories"`
	Brands          []Bucket `json:"brands"`
	PriceRanges     []Bucket `json:"priceRanges"`
	AvgRating       float64  `json:"avgRating"`
	TotalStock      int64    `json:"totalStock"`
	ExecutionTimeMs int64    `json:"executionTimeMs"`
}

// DeletedResponse reports how many products a bulk delete removed.
type DeletedResponse struct {
	Deleted int `json:"deleted"`
}

// HealthResponse is the health endpoint body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (r *ProductRequest) toDraft() domprod.Draft {
	return domprod.Draft{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		Brand:         r.Brand,
		Tags:          r.Tags,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		Active:        r.Active,
		Featured:      r.Featured,
	}
}

func productToDTO(p *domprod.Product) Product {
	tags := p.Tags()
	if tags == nil {
		tags = []string{}
	}
	return Product{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Category:      p.Category(),
		Brand:         p.Brand(),
		Tags:          tags,
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
		Rating:        p.Rating(),
		ReviewCount:   p.ReviewCount(),
		Active:        p.Active(),
		Featured:      p.Featured(),
		CreatedAt:     time.UnixMilli(p.CreatedAt()).UTC(),
		UpdatedAt:     time.UnixMilli(p.UpdatedAt()).UTC(),
	}
}

func productsToDTO(ps []domprod.Product) []Product {
	out := make([]Product, len(ps))
	for i := range ps {
		out[i] = productToDTO(&ps[i])
	}
	return out
}

func pageToDTO(p *searchuc.ProductPage) PageResponse {
	return PageResponse{
		Content:       productsToDTO(p.Content()),
		TotalElements: p.TotalElements(),
		CurrentPage:   p.CurrentPage(),
		Size:          p.Size(),
		TotalPages:    p.TotalPages(),
		SearchTimeMs:  p.SearchTimeMs(),
	}
}

func bucketsToDTO(in []aggregation.Bucket) []Bucket {
	out := make([]Bucket, len(in))
	for i, b := range in {
		out[i] = Bucket{Key: b.Key, Count: b.Count}
	}
	return out
}

func summaryToDTO(s *aggregation.Summary) AggregationsResponse {
	return AggregationsResponse{
		Categories:      bucketsToDTO(s.Categories()),
		Brands:          bucketsToDTO(s.Brands()),
		PriceRanges:     bucketsToDTO(s.PriceRanges()),
		AvgRating:       s.AverageRating(),
		TotalStock:      s.TotalStock(),
		ExecutionTimeMs: s.ExecutionTimeMs(),
	}
}
