package criteria

// Named finders: each catalogue lookup maps to one explicit criteria shape.
// Only ActiveOnly, FeaturedInPriceRange and Keyword filter on the active flag.

// MatchAll matches every product.
func MatchAll() Query {
	return NewQuery(All())
}

// ByCategory matches an exact category.
func ByCategory(category string) Query {
	return NewQuery(All(Exact(FieldCategoryKeyword, category)))
}

// ByBrand matches an exact brand.
func ByBrand(brand string) Query {
	return NewQuery(All(Exact(FieldBrandKeyword, brand)))
}

// ActiveOnly matches published products.
func ActiveOnly() Query {
	return NewQuery(All(ExactBool(FieldActive, true)))
}

// FeaturedOnly matches featured products.
func FeaturedOnly() Query {
	return NewQuery(All(ExactBool(FieldFeatured, true)))
}

// PriceBetween matches min <= price <= max.
func PriceBetween(minPrice, maxPrice float64) Query {
	return NewQuery(All(priceRange(minPrice, maxPrice)))
}

// RatingAtLeast matches rating >= minRating.
func RatingAtLeast(minRating float64) Query {
	return NewQuery(All(Range(FieldRating, Inclusive(minRating), Unbounded())))
}

// StockAbove matches stock strictly greater than n.
func StockAbove(n int) Query {
	return NewQuery(All(Range(FieldStockQuantity, Exclusive(float64(n)), Unbounded())))
}

// ByTags matches products carrying at least one of tags.
func ByTags(tags ...string) Query {
	nodes := make([]Node, 0, len(tags))
	for _, t := range tags {
		nodes = append(nodes, Exact(FieldTags, t))
	}
	return NewQuery(All(Any(1, nodes...)))
}

// NameOrDescription matches name against name or description against description.
func NameOrDescription(name, description string) Query {
	return NewQuery(
		All(Any(1, Text(FieldName, name), Text(FieldDescription, description))),
		ByScore(),
	)
}

// CategoryInPriceRange matches a category within a price range.
func CategoryInPriceRange(category string, minPrice, maxPrice float64) Query {
	return NewQuery(All(
		Exact(FieldCategoryKeyword, category),
		priceRange(minPrice, maxPrice),
	))
}

// FeaturedInPriceRange matches active featured products within a price range.
func FeaturedInPriceRange(minPrice, maxPrice float64) Query {
	return NewQuery(All(
		ExactBool(FieldFeatured, true),
		ExactBool(FieldActive, true),
		priceRange(minPrice, maxPrice),
	))
}

// FullText is the simple search box: q against name (boosted), description,
// category and brand, ordered by relevance. No active filter.
func FullText(q string) Query {
	return NewQuery(All(textGroup(q)), ByScore())
}

// Keyword matches active products whose name (boosted), description or
// category contains keyword.
func Keyword(keyword string) Query {
	return NewQuery(All(
		ExactBool(FieldActive, true),
		Any(1,
			Text(FieldName, keyword, Boost(NameBoost)),
			Text(FieldDescription, keyword),
			Text(FieldCategory, keyword),
		),
	), ByScore())
}

// FuzzyText tolerates typos in q across name, description and brand.
func FuzzyText(q string) Query {
	return NewQuery(All(Any(1,
		Text(FieldName, q, Fuzzy()),
		Text(FieldDescription, q, Fuzzy()),
		Text(FieldBrand, q, Fuzzy()),
	)), ByScore())
}

// Suggest prefix-matches name, brand and category.
func Suggest(prefix string) Query {
	return NewQuery(All(Any(1,
		Text(FieldName, prefix, Prefix()),
		Text(FieldBrand, prefix, Prefix()),
		Text(FieldCategory, prefix, Prefix()),
	)))
}

func priceRange(minPrice, maxPrice float64) Node {
	return Range(FieldPrice, Inclusive(minPrice), Inclusive(maxPrice))
}
