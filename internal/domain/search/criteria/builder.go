// Package criteria builds backend-agnostic search predicate trees.
package criteria

import "strings"

// Query is a criteria tree plus its ordered sort keys.
type Query struct {
	root Node
	sort []SortKey
}

// NewQuery creates a query from a root node and sort keys.
func NewQuery(root Node, sort ...SortKey) Query {
	s := make([]SortKey, len(sort))
	copy(s, sort)
	return Query{root: root, sort: s}
}

// Root returns the root predicate.
func (q Query) Root() Node { return q.root }

// Sort returns a copy of the sort keys.
func (q Query) Sort() []SortKey {
	s := make([]SortKey, len(q.sort))
	copy(s, q.sort)
	return s
}

// Params are the optional inputs of an advanced search. Nil means "not given".
type Params struct {
	Query         *string
	Category      *string
	Brand         *string
	MinPrice      *float64
	MaxPrice      *float64
	MinRating     *float64
	InStockOnly   *bool
	SortBy        string
	SortDirection Direction
}

// filter contributes at most one node for a Params value.
type filter func(p Params) (Node, bool)

// filters are applied in order; the order is reflected in the resulting tree.
var filters = []filter{
	activeFilter,
	textFilter,
	categoryFilter,
	brandFilter,
	priceFilter,
	ratingFilter,
	stockFilter,
}

// Build assembles the advanced-search query. It is total: any combination of
// unset parameters is valid and only omits the matching predicate.
func Build(p Params) Query {
	nodes := make([]Node, 0, len(filters))
	for _, f := range filters {
		if n, ok := f(p); ok {
			nodes = append(nodes, n)
		}
	}
	return NewQuery(All(nodes...), ResolveSort(p.SortBy, p.SortDirection)...)
}

func activeFilter(Params) (Node, bool) {
	return ExactBool(FieldActive, true), true
}

func textFilter(p Params) (Node, bool) {
	q, ok := nonBlank(p.Query)
	if !ok {
		return Node{}, false
	}
	return textGroup(q), true
}

// textGroup matches q against every searchable text field, name boosted.
func textGroup(q string) Node {
	return Any(1,
		Text(FieldName, q, Boost(NameBoost)),
		Text(FieldDescription, q),
		Text(FieldCategory, q),
		Text(FieldBrand, q),
	)
}

func categoryFilter(p Params) (Node, bool) {
	c, ok := nonBlank(p.Category)
	if !ok {
		return Node{}, false
	}
	return Exact(FieldCategoryKeyword, c), true
}

func brandFilter(p Params) (Node, bool) {
	b, ok := nonBlank(p.Brand)
	if !ok {
		return Node{}, false
	}
	return Exact(FieldBrandKeyword, b), true
}

// priceFilter emits a single range covering whichever bounds are present.
func priceFilter(p Params) (Node, bool) {
	if p.MinPrice == nil && p.MaxPrice == nil {
		return Node{}, false
	}
	return Range(FieldPrice, inclusiveOrOpen(p.MinPrice), inclusiveOrOpen(p.MaxPrice)), true
}

func ratingFilter(p Params) (Node, bool) {
	if p.MinRating == nil {
		return Node{}, false
	}
	return Range(FieldRating, Inclusive(*p.MinRating), Unbounded()), true
}

// stockFilter requires stock strictly above zero.
func stockFilter(p Params) (Node, bool) {
	if p.InStockOnly == nil || !*p.InStockOnly {
		return Node{}, false
	}
	return Range(FieldStockQuantity, Exclusive(0), Unbounded()), true
}

func inclusiveOrOpen(v *float64) Bound {
	if v == nil {
		return Unbounded()
	}
	return Inclusive(*v)
}

// nonBlank returns the trimmed value when it is present and not blank.
func nonBlank(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	return v, v != ""
}
