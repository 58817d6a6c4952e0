package chi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Query parameter defaults.
const (
	defaultPage      = 0
	defaultMinRating = 4.0
	defaultMinStock  = 0
)

// InvalidParamFormatError reports a parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// RequiredParamError reports a missing required parameter.
type RequiredParamError struct {
	ParamName string
}

func (e *RequiredParamError) Error() string {
	return fmt.Sprintf("query parameter %s is required", e.ParamName)
}

// PageParams selects a page of results.
type PageParams struct {
	Page *int
	Size *int
}

// PriceRangeParams bounds a price filter.
type PriceRangeParams struct {
	MinPrice float64
	MaxPrice float64
}

// AdvancedSearchParams are the /api/search/advanced inputs.
type AdvancedSearchParams struct {
	Query       *string
	Category    *string
	Brand       *string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	InStockOnly *bool
	SortBy      *string
	SortDir     *string
	PageParams
}

// bindQuery binds a form-style exploded query parameter.
func bindQuery(r *http.Request, name string, required bool, dest any) error {
	if required {
		if _, ok := r.URL.Query()[name]; !ok {
			return &RequiredParamError{ParamName: name}
		}
	}
	if err := runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest); err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

// bindList binds a comma-separated query parameter such as tags=a,b.
func bindList(r *http.Request, name string, dest *[]string) error {
	if _, ok := r.URL.Query()[name]; !ok {
		return &RequiredParamError{ParamName: name}
	}
	if err := runtime.BindQueryParameter("form", false, true, name, r.URL.Query(), dest); err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

// bindPath binds a simple-style path parameter.
func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, gochi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

// bindText binds a required, non-blank text parameter.
func bindText(r *http.Request, name string) (string, error) {
	var v string
	if err := bindQuery(r, name, true, &v); err != nil {
		return "", err
	}
	if strings.TrimSpace(v) == "" {
		return "", &InvalidParamFormatError{ParamName: name, Err: errors.New("must not be blank")}
	}
	return v, nil
}

func bindPageParams(r *http.Request) (PageParams, error) {
	var p PageParams
	if err := bindQuery(r, "page", false, &p.Page); err != nil {
		return p, err
	}
	if err := bindQuery(r, "size", false, &p.Size); err != nil {
		return p, err
	}
	if p.Page != nil && *p.Page < 0 {
		return p, &InvalidParamFormatError{ParamName: "page", Err: errors.New("must not be negative")}
	}
	return p, nil
}

func bindPriceRange(r *http.Request) (PriceRangeParams, error) {
	var p PriceRangeParams
	if err := bindQuery(r, "minPrice", true, &p.MinPrice); err != nil {
		return p, err
	}
	if err := bindQuery(r, "maxPrice", true, &p.MaxPrice); err != nil {
		return p, err
	}
	return p, nil
}

func bindAdvancedSearchParams(r *http.Request) (AdvancedSearchParams, error) {
	var p AdvancedSearchParams
	optional := []struct {
		name string
		dest any
	}{
		{"query", &p.Query},
		{"category", &p.Category},
		{"brand", &p.Brand},
		{"minPrice", &p.MinPrice},
		{"maxPrice", &p.MaxPrice},
		{"minRating", &p.MinRating},
		{"inStockOnly", &p.InStockOnly},
		{"sortBy", &p.SortBy},
		{"sortDir", &p.SortDir},
	}
	for _, o := range optional {
		if err := bindQuery(r, o.name, false, o.dest); err != nil {
			return p, err
		}
	}
	if p.InStockOnly == nil {
		if err := bindQuery(r, "inStock", false, &p.InStockOnly); err != nil {
			return p, err
		}
	}

	pp, err := bindPageParams(r)
	if err != nil {
		return p, err
	}
	p.PageParams = pp
	return p, nil
}

// pageOrDefault resolves page/size; size is not validated here.
func (p PageParams) pageOrDefault(defaultSize int) (page, size int) {
	page, size = defaultPage, defaultSize
	if p.Page != nil {
		page = *p.Page
	}
	if p.Size != nil {
		size = *p.Size
	}
	return page, size
}
