package criteria

// Index attribute names for the product schema. *Keyword fields hold the
// untokenised form of their text counterpart.
const (
	FieldName            = "name"
	FieldNameKeyword     = "name_kw"
	FieldDescription     = "description"
	FieldCategory        = "category"
	FieldCategoryKeyword = "category_kw"
	FieldBrand           = "brand"
	FieldBrandKeyword    = "brand_kw"
	FieldTags            = "tags"
	FieldPrice           = "price"
	FieldStockQuantity   = "stock_quantity"
	FieldRating          = "rating"
	FieldReviewCount     = "review_count"
	FieldActive          = "active"
	FieldFeatured        = "featured"
	FieldCreatedAt       = "created_at"
	FieldUpdatedAt       = "updated_at"
)

// NameBoost is the relevance multiplier applied to name matches.
const NameBoost = 2.0
