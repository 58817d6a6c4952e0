package chi

import (
	"context"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
	logpkg "github.com/kailas-cloud/shopdex/internal/logger"
)

// CreateProduct handles POST /api/products.
func (s *Server) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := s.products.Create(r.Context(), req.toDraft())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/products/"+p.ID())
	writeJSON(w, http.StatusCreated, productToDTO(&p))
}

// BulkCreateProducts handles POST /api/products/bulk.
func (s *Server) BulkCreateProducts(w http.ResponseWriter, r *http.Request) {
	var req []ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	drafts := make([]product.Draft, len(req))
	for i := range req {
		drafts[i] = req[i].toDraft()
	}

	created, err := s.products.CreateMany(r.Context(), drafts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, productsToDTO(created))
}

// GetProduct handles GET /api/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleError(w, r, err)
		return
	}

	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, productToDTO(&p))
}

// UpdateProduct handles PUT /api/products/{id}.
func (s *Server) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleError(w, r, err)
		return
	}

	var req ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := s.products.Update(r.Context(), id, req.toDraft())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, productToDTO(&p))
}

// DeleteProduct handles DELETE /api/products/{id}.
func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.products.Delete(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllProducts handles DELETE /api/products/bulk.
func (s *Server) DeleteAllProducts(w http.ResponseWriter, r *http.Request) {
	n, err := s.products.DeleteAll(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DeletedResponse{Deleted: n})
}

// ListProducts handles GET /api/products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	s.findPage(w, r, criteria.MatchAll())
}

// ProductsByCategory handles GET /api/products/category/{category}.
func (s *Server) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	var category string
	if err := bindPath(r, "category", &category); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.list(w, r, criteria.ByCategory(category))
}

// ProductsByCategoryPage handles GET /api/products/category/{category}/page.
func (s *Server) ProductsByCategoryPage(w http.ResponseWriter, r *http.Request) {
	var category string
	if err := bindPath(r, "category", &category); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.findPage(w, r, criteria.ByCategory(category))
}

// ProductsByBrand handles GET /api/products/brand/{brand}.
func (s *Server) ProductsByBrand(w http.ResponseWriter, r *http.Request) {
	var brand string
	if err := bindPath(r, "brand", &brand); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.list(w, r, criteria.ByBrand(brand))
}

// FeaturedProducts handles GET /api/products/featured.
func (s *Server) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, criteria.FeaturedOnly())
}

// HighRatedProducts handles GET /api/products/high-rated.
func (s *Server) HighRatedProducts(w http.ResponseWriter, r *http.Request) {
	minRating := defaultMinRating
	var v *float64
	if err := bindQuery(r, "minRating", false, &v); err != nil {
		s.handleError(w, r, err)
		return
	}
	if v != nil {
		minRating = *v
	}
	s.list(w, r, criteria.RatingAtLeast(minRating))
}

// InStockProducts handles GET /api/products/in-stock.
func (s *Server) InStockProducts(w http.ResponseWriter, r *http.Request) {
	minStock := defaultMinStock
	var v *int
	if err := bindQuery(r, "minStock", false, &v); err != nil {
		s.handleError(w, r, err)
		return
	}
	if v != nil {
		minStock = *v
	}
	s.list(w, r, criteria.StockAbove(minStock))
}

// ProductsInPriceRange handles GET /api/products/price-range.
func (s *Server) ProductsInPriceRange(w http.ResponseWriter, r *http.Request) {
	pr, err := bindPriceRange(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.list(w, r, criteria.PriceBetween(pr.MinPrice, pr.MaxPrice))
}

// ProductsInPriceRangePage handles GET /api/products/price-range/page.
func (s *Server) ProductsInPriceRangePage(w http.ResponseWriter, r *http.Request) {
	pr, err := bindPriceRange(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.findPage(w, r, criteria.PriceBetween(pr.MinPrice, pr.MaxPrice))
}

// CategoryInPriceRange handles GET /api/products/category/{category}/price-range.
func (s *Server) CategoryInPriceRange(w http.ResponseWriter, r *http.Request) {
	var category string
	if err := bindPath(r, "category", &category); err != nil {
		s.handleError(w, r, err)
		return
	}
	pr, err := bindPriceRange(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.list(w, r, criteria.CategoryInPriceRange(category, pr.MinPrice, pr.MaxPrice))
}

// ProductsByTags handles GET /api/products/tags?tags=a,b.
func (s *Server) ProductsByTags(w http.ResponseWriter, r *http.Request) {
	var tags []string
	if err := bindList(r, "tags", &tags); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.list(w, r, criteria.ByTags(tags...))
}

// TextSearch handles GET /api/products/text-search. Accepts text or query.
func (s *Server) TextSearch(w http.ResponseWriter, r *http.Request) {
	name := "text"
	if _, ok := r.URL.Query()[name]; !ok {
		name = "query"
	}
	text, err := bindText(r, name)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.list(w, r, criteria.NameOrDescription(text, text))
}

// FeaturedInPriceRange handles GET /api/products/featured/price-range.
func (s *Server) FeaturedInPriceRange(w http.ResponseWriter, r *http.Request) {
	pr, err := bindPriceRange(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.list(w, r, criteria.FeaturedInPriceRange(pr.MinPrice, pr.MaxPrice))
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, q criteria.Query) {
	products, err := s.search.List(routeContext(r), q)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productsToDTO(products))
}

func (s *Server) findPage(w http.ResponseWriter, r *http.Request, q criteria.Query) {
	pp, err := bindPageParams(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	pageNum, size := pp.pageOrDefault(s.search.DefaultPageSize())

	p, err := s.search.Find(routeContext(r), q, pageNum, size)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToDTO(&p))
}

// routeContext tags the request logger with the matched route pattern.
func routeContext(r *http.Request) context.Context {
	rc := gochi.RouteContext(r.Context())
	if rc == nil {
		return r.Context()
	}
	return logpkg.WithFields(r.Context(), zap.String("route", rc.RoutePattern()))
}
