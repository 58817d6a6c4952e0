package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"p1"}`))
	})
	r.Get("/api/products/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Post("/api/products", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Get(scrapePath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	return r
}

func serve(r http.Handler, method, path string) int {
	req := httptest.NewRequest(method, path, http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr.Code
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := newRouter()
	if code := serve(r, "GET", "/api/products/abc"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/products/{id}", "200"))
	if v < 1 {
		t.Errorf("expected requests_total for route pattern >= 1, got %f", v)
	}
	if n := testutil.CollectAndCount(httpResponseSize); n == 0 {
		t.Error("expected http_response_size_bytes to have observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := newRouter()
	tests := []struct {
		method, path, route, status string
	}{
		{"GET", "/api/products/missing", "/api/products/missing", "404"},
		{"POST", "/api/products", "/api/products", "201"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			serve(r, tc.method, tc.path)
			v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))
			if v < 1 {
				t.Errorf("expected requests_total %s %s %s >= 1, got %f", tc.method, tc.route, tc.status, v)
			}
		})
	}
}

func TestMiddleware_SkipsScrapePath(t *testing.T) {
	r := newRouter()
	serve(r, "GET", scrapePath)

	v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", scrapePath, "200"))
	if v != 0 {
		t.Errorf("expected scrape requests to be excluded, got %f", v)
	}
}

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/", "/"},
		{"/api/products/", "/api/products"},
		{"/api/search/advanced", "/api/search/advanced"},
	}
	for _, tc := range tests {
		if got := normalizeRoute(tc.input); got != tc.expected {
			t.Errorf("normalizeRoute(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
