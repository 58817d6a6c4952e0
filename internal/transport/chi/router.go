package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/shopdex/internal/metrics"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	APIKeys []string
}

// NewRouter builds the full HTTP handler: middleware chain plus all routes.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := gochi.NewRouter()
	r.Use(Recoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(BearerAuthMiddleware(opts.APIKeys))
	r.Use(metrics.Middleware())

	s.Register(r)
	return r
}

// Register mounts the API routes on r.
func (s *Server) Register(r gochi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/products", func(r gochi.Router) {
		r.Get("/", s.ListProducts)
		r.Post("/", s.CreateProduct)
		r.Post("/bulk", s.BulkCreateProducts)
		r.Delete("/bulk", s.DeleteAllProducts)

		r.Get("/featured", s.FeaturedProducts)
		r.Get("/featured/price-range", s.FeaturedInPriceRange)
		r.Get("/high-rated", s.HighRatedProducts)
		r.Get("/in-stock", s.InStockProducts)
		r.Get("/price-range", s.ProductsInPriceRange)
		r.Get("/price-range/page", s.ProductsInPriceRangePage)
		r.Get("/tags", s.ProductsByTags)
		r.Get("/text-search", s.TextSearch)
		r.Get("/brand/{brand}", s.ProductsByBrand)
		r.Get("/category/{category}", s.ProductsByCategory)
		r.Get("/category/{category}/page", s.ProductsByCategoryPage)
		r.Get("/category/{category}/price-range", s.CategoryInPriceRange)

		r.Get("/{id}", s.GetProduct)
		r.Put("/{id}", s.UpdateProduct)
		r.Delete("/{id}", s.DeleteProduct)
	})

	r.Route("/api/search", func(r gochi.Router) {
		r.Get("/", s.Search)
		r.Get("/advanced", s.AdvancedSearch)
		r.Get("/enhanced", s.EnhancedSearch)
		r.Get("/fuzzy", s.FuzzySearch)
		r.Get("/suggestions", s.Suggestions)
		r.Get("/aggregations", s.Aggregations)
	})
}
