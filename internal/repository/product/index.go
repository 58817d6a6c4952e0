package product

import (
	"github.com/kailas-cloud/shopdex/internal/db"
	c "github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
)

// KeywordSeparator splits TAG values. The unit separator never occurs in a
// name, category, brand or tag, so each value is indexed whole.
const KeywordSeparator = "\x1f"

// Definition returns the FT index over product documents. Text fields have
// keyword twins on the same path for exact filters, sorting and facets.
func Definition(indexName, keyPrefix string) *db.IndexDefinition {
	return db.NewIndex(indexName).
		OnJSON().
		Prefix(keyPrefix).
		Text("$.name", db.As(c.FieldName)).
		Tag("$.name", db.As(c.FieldNameKeyword), db.CaseSensitive(), db.Separator(KeywordSeparator), db.Sortable()).
		Text("$.description", db.As(c.FieldDescription)).
		Text("$.category", db.As(c.FieldCategory)).
		Tag("$.category", db.As(c.FieldCategoryKeyword), db.CaseSensitive(), db.Separator(KeywordSeparator), db.Sortable()).
		Text("$.brand", db.As(c.FieldBrand)).
		Tag("$.brand", db.As(c.FieldBrandKeyword), db.CaseSensitive(), db.Separator(KeywordSeparator), db.Sortable()).
		Tag("$.tags[*]", db.As(c.FieldTags), db.Separator(KeywordSeparator)).
		Tag("$.active", db.As(c.FieldActive)).
		Tag("$.featured", db.As(c.FieldFeatured)).
		Numeric("$.price", db.As(c.FieldPrice), db.Sortable()).
		Numeric("$.rating", db.As(c.FieldRating), db.Sortable()).
		Numeric("$.stock_quantity", db.As(c.FieldStockQuantity), db.Sortable()).
		Numeric("$.review_count", db.As(c.FieldReviewCount)).
		Numeric("$.created_at", db.As(c.FieldCreatedAt), db.Sortable()).
		Numeric("$.updated_at", db.As(c.FieldUpdatedAt), db.Sortable()).
		MustBuild()
}
