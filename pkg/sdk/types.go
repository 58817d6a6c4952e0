package shopdex

import (
	"time"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
)

// Product is a catalogue item.
type Product struct {
	ID            string
	Name          string
	Description   string
	Category      string
	Brand         string
	Tags          []string
	Price         float64
	StockQuantity int
	Rating        float64
	ReviewCount   int
	Active        bool
	Featured      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductInput carries the writable product fields.
// Nil Active defaults to true, nil Featured to false.
type ProductInput struct {
	Name          string
	Description   string
	Category      string
	Brand         string
	Tags          []string
	Price         float64
	StockQuantity int
	Rating        float64
	ReviewCount   int
	Active        *bool
	Featured      *bool
}

// SortDirection orders SearchParams results.
type SortDirection int

// Sort direction constants. Desc is the zero value.
const (
	Desc SortDirection = iota
	Asc
)

// SearchParams are the optional filters of an advanced search.
// Nil or blank fields are ignored.
type SearchParams struct {
	Query       string
	Category    string
	Brand       string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	InStockOnly bool
	SortBy      string // relevance (default), price, rating, name, created
	SortDir     SortDirection
}

// Page is one page of products.
type Page struct {
	Products      []Product
	TotalElements int64
	CurrentPage   int
	Size          int
	TotalPages    int
	SearchTimeMs  int64
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.CurrentPage+1 < p.TotalPages }

// Bucket is a facet value with its document count.
type Bucket struct {
	Key   string
	Count int64
}

// Aggregations summarises the active catalogue.
type Aggregations struct {
	Categories      []Bucket
	Brands          []Bucket
	PriceRanges     []Bucket // keyed by bucket lower bound
	AverageRating   float64
	TotalStock      int64
	ExecutionTimeMs int64
}

// Float returns a pointer to v, for SearchParams bounds.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for ProductInput flags.
func Bool(v bool) *bool { return &v }

func toDraft(in ProductInput) domprod.Draft {
	return domprod.Draft{
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Brand:         in.Brand,
		Tags:          append([]string(nil), in.Tags...),
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		Active:        in.Active,
		Featured:      in.Featured,
	}
}

func fromProduct(p domprod.Product) Product {
	return Product{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Category:      p.Category(),
		Brand:         p.Brand(),
		Tags:          p.Tags(),
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

func fromProducts(ps []domprod.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = fromProduct(p)
	}
	return out
}

func fromPage(p searchuc.ProductPage) Page {
	return Page{
		Products:      fromProducts(p.Content()),
		TotalElements: p.TotalElements(),
		CurrentPage:   p.CurrentPage(),
		Size:          p.Size(),
		TotalPages:    p.TotalPages(),
		SearchTimeMs:  p.SearchTimeMs(),
	}
}

func toParams(sp SearchParams) criteria.Params {
	p := criteria.Params{
		MinPrice:      sp.MinPrice,
		MaxPrice:      sp.MaxPrice,
		MinRating:     sp.MinRating,
		SortBy:        sp.SortBy,
		SortDirection: criteria.Desc,
	}
	if sp.Query != "" {
		p.Query = &sp.Query
	}
	if sp.Category != "" {
		p.Category = &sp.Category
	}
	if sp.Brand != "" {
		p.Brand = &sp.Brand
	}
	if sp.InStockOnly {
		p.InStockOnly = &sp.InStockOnly
	}
	if sp.SortDir == Asc {
		p.SortDirection = criteria.Asc
	}
	return p
}

func fromSummary(s aggregation.Summary) Aggregations {
	return Aggregations{
		Categories:      fromBuckets(s.Categories()),
		Brands:          fromBuckets(s.Brands()),
		PriceRanges:     fromBuckets(s.PriceRanges()),
		AverageRating:   s.AverageRating(),
		TotalStock:      s.TotalStock(),
		ExecutionTimeMs: s.ExecutionTimeMs(),
	}
}

func fromBuckets(in []aggregation.Bucket) []Bucket {
	out := make([]Bucket, len(in))
	for i, b := range in {
		out[i] = Bucket{Key: b.Key, Count: b.Count}
	}
	return out
}
