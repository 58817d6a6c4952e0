package criteria

import "strings"

// Direction is a sort order. The zero value is descending.
type Direction int

const (
	// Desc sorts from high to low.
	Desc Direction = iota
	// Asc sorts from low to high.
	Asc
)

func (d Direction) String() string {
	if d == Asc {
		return "asc"
	}
	return "desc"
}

// ParseDirection maps "asc" (any case) to Asc and everything else to Desc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "asc") {
		return Asc
	}
	return Desc
}

// SortBy is a recognised sort option.
type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortPrice     SortBy = "price"
	SortRating    SortBy = "rating"
	SortName      SortBy = "name"
	SortCreated   SortBy = "created"
)

// sortFields maps sort options to index attributes. Name sorts on the
// keyword form so the order is lexical and deterministic.
var sortFields = map[SortBy]string{
	SortPrice:   FieldPrice,
	SortRating:  FieldRating,
	SortName:    FieldNameKeyword,
	SortCreated: FieldCreatedAt,
}

// ParseSortBy normalises s; unknown or empty values resolve to SortRelevance.
func ParseSortBy(s string) SortBy {
	sb := SortBy(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sortFields[sb]; ok {
		return sb
	}
	return SortRelevance
}

// SortKey orders results either by relevance score or by a field.
type SortKey struct {
	field     string
	direction Direction
}

// ByScore orders by relevance, highest first.
func ByScore() SortKey { return SortKey{direction: Desc} }

// ByField orders by an index attribute.
func ByField(field string, d Direction) SortKey { return SortKey{field: field, direction: d} }

// IsScore reports whether the key orders by relevance.
func (k SortKey) IsScore() bool { return k.field == "" }

// Field returns the sort attribute; empty for score keys.
func (k SortKey) Field() string { return k.field }

// Direction returns the sort direction.
func (k SortKey) Direction() Direction { return k.direction }

func (k SortKey) String() string {
	if k.IsScore() {
		return "_score desc"
	}
	return k.field + " " + k.direction.String()
}

// ResolveSort turns a sort request into sort keys. Relevance is always
// descending regardless of d.
func ResolveSort(sortBy string, d Direction) []SortKey {
	sb := ParseSortBy(sortBy)
	if sb == SortRelevance {
		return []SortKey{ByScore()}
	}
	return []SortKey{ByField(sortFields[sb], d)}
}
