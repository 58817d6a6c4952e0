package chi

import (
	"net/http"

	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
)

// Search handles GET /api/search?query=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query, err := bindText(r, "query")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.findPage(w, r, criteria.FullText(query))
}

// AdvancedSearch handles GET /api/search/advanced.
func (s *Server) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	p, err := bindAdvancedSearchParams(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	params := criteria.Params{
		Query:       p.Query,
		Category:    p.Category,
		Brand:       p.Brand,
		MinPrice:    p.MinPrice,
		MaxPrice:    p.MaxPrice,
		MinRating:   p.MinRating,
		InStockOnly: p.InStockOnly,
	}
	if p.SortBy != nil {
		params.SortBy = *p.SortBy
	}
	params.SortDirection = criteria.Desc
	if p.SortDir != nil {
		params.SortDirection = criteria.ParseDirection(*p.SortDir)
	}

	pageNum, size := p.pageOrDefault(s.search.DefaultPageSize())
	page, err := s.search.Advanced(routeContext(r), params, pageNum, size)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToDTO(&page))
}

// EnhancedSearch handles GET /api/search/enhanced?keyword=.
func (s *Server) EnhancedSearch(w http.ResponseWriter, r *http.Request) {
	keyword, err := bindText(r, "keyword")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.findPage(w, r, criteria.Keyword(keyword))
}

// FuzzySearch handles GET /api/search/fuzzy?query=.
func (s *Server) FuzzySearch(w http.ResponseWriter, r *http.Request) {
	query, err := bindText(r, "query")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.findPage(w, r, criteria.FuzzyText(query))
}

// Suggestions handles GET /api/search/suggestions?input=.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	var input string
	if err := bindQuery(r, "input", true, &input); err != nil {
		s.handleError(w, r, err)
		return
	}

	out, err := s.search.Suggest(r.Context(), input)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Aggregations handles GET /api/search/aggregations.
func (s *Server) Aggregations(w http.ResponseWriter, r *http.Request) {
	sum, err := s.search.Aggregations(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryToDTO(&sum))
}
