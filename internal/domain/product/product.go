package product

import (
	"strings"
	"time"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

// MaxRating is the upper bound of the rating scale.
const MaxRating = 5.0

// Draft carries caller-supplied product fields before validation.
// Nil Active/Featured fall back to true/false.
type Draft struct {
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

// Product is the catalogue aggregate (immutable value object).
type Product struct {
	id            string
	name          string
	description   string
	category      string
	brand         string
	tags          []string
	price         float64
	stockQuantity int
	rating        float64
	reviewCount   int
	active        bool
	featured      bool
	createdAt     int64
	updatedAt     int64
}

// New validates a draft and creates a product without an ID.
// Both timestamps are set to now.
func New(d Draft, now time.Time) (Product, error) {
	p, err := fromDraft(d)
	if err != nil {
		return Product{}, err
	}
	ts := now.UnixMilli()
	p.createdAt = ts
	p.updatedAt = ts
	return p, nil
}

// Reconstruct creates a Product without validation (storage hydration).
func Reconstruct(
	id, name, description, category, brand string, tags []string,
	price float64, stockQuantity int, rating float64, reviewCount int,
	active, featured bool, createdAt, updatedAt int64,
) Product {
	return Product{
		id: id, name: name, description: description, category: category, brand: brand,
		tags: tags, price: price, stockQuantity: stockQuantity, rating: rating,
		reviewCount: reviewCount, active: active, featured: featured,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// Revise validates a draft and returns the replacement product.
// ID and createdAt are kept; updatedAt is set to now.
func (p Product) Revise(d Draft, now time.Time) (Product, error) {
	next, err := fromDraft(d)
	if err != nil {
		return Product{}, err
	}
	next.id = p.id
	next.createdAt = p.createdAt
	next.updatedAt = now.UnixMilli()
	return next, nil
}

// WithID returns a copy with the given identifier.
func (p Product) WithID(id string) Product {
	p.id = id
	p.tags = cloneTags(p.tags)
	return p
}

// ID returns the product identifier.
func (p Product) ID() string { return p.id }

// Name returns the product name.
func (p Product) Name() string { return p.name }

// Description returns the product description.
func (p Product) Description() string { return p.description }

// Category returns the product category.
func (p Product) Category() string { return p.category }

// Brand returns the product brand.
func (p Product) Brand() string { return p.brand }

// Tags returns a copy of the product tags.
func (p Product) Tags() []string { return cloneTags(p.tags) }

// Price returns the unit price.
func (p Product) Price() float64 { return p.price }

// StockQuantity returns the units in stock.
func (p Product) StockQuantity() int { return p.stockQuantity }

// Rating returns the average rating on a 0-5 scale.
func (p Product) Rating() float64 { return p.rating }

// ReviewCount returns the number of reviews.
func (p Product) ReviewCount() int { return p.reviewCount }

// Active reports whether the product is published.
func (p Product) Active() bool { return p.active }

// Featured reports whether the product is featured.
func (p Product) Featured() bool { return p.featured }

// CreatedAt returns the creation time in epoch milliseconds.
func (p Product) CreatedAt() int64 { return p.createdAt }

// UpdatedAt returns the last update time in epoch milliseconds.
func (p Product) UpdatedAt() int64 { return p.updatedAt }

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.stockQuantity > 0 }

func fromDraft(d Draft) (Product, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Product{}, domain.NewValidationError("name", "is required")
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		return Product{}, domain.NewValidationError("category", "is required")
	}
	if d.Price <= 0 {
		return Product{}, domain.NewValidationError("price", "must be greater than 0")
	}
	if d.StockQuantity < 0 {
		return Product{}, domain.NewValidationError("stockQuantity", "must not be negative")
	}
	if d.Rating < 0 || d.Rating > MaxRating {
		return Product{}, domain.NewValidationError("rating", "must be between 0 and 5")
	}
	if d.ReviewCount < 0 {
		return Product{}, domain.NewValidationError("reviewCount", "must not be negative")
	}

	active := true
	if d.Active != nil {
		active = *d.Active
	}
	featured := false
	if d.Featured != nil {
		featured = *d.Featured
	}

	return Product{
		name:          name,
		description:   strings.TrimSpace(d.Description),
		category:      category,
		brand:         strings.TrimSpace(d.Brand),
		tags:          normalizeTags(d.Tags),
		price:         d.Price,
		stockQuantity: d.StockQuantity,
		rating:        d.Rating,
		reviewCount:   d.ReviewCount,
		active:        active,
		featured:      featured,
	}, nil
}

// normalizeTags trims tags and drops blanks and duplicates, keeping first-seen order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
