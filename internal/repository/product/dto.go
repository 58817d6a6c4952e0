package product

import (
	"encoding/json"
	"fmt"
	"strconv"

	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
)

// productDoc is the stored JSON shape. Flags are strings so they index as TAG.
type productDoc struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	Tags          []string `json:"tags"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stock_quantity"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Active        string   `json:"active"`
	Featured      string   `json:"featured"`
	CreatedAt     int64    `json:"created_at"`
	UpdatedAt     int64    `json:"updated_at"`
}

func toDoc(p *domprod.Product) productDoc {
	tags := p.Tags()
	if tags == nil {
		tags = []string{}
	}
	return productDoc{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Category:      p.Category(),
		Brand:         p.Brand(),
		Tags:          tags,
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
		Rating:        p.Rating(),
		ReviewCount:   p.ReviewCount(),
		Active:        strconv.FormatBool(p.Active()),
		Featured:      strconv.FormatBool(p.Featured()),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func (d *productDoc) toDomain() domprod.Product {
	return domprod.Reconstruct(
		d.ID, d.Name, d.Description, d.Category, d.Brand, d.Tags,
		d.Price, d.StockQuantity, d.Rating, d.ReviewCount,
		d.Active == "true", d.Featured == "true",
		d.CreatedAt, d.UpdatedAt,
	)
}

func encode(p *domprod.Product) ([]byte, error) {
	data, err := json.Marshal(toDoc(p))
	if err != nil {
		return nil, fmt.Errorf("marshal product: %w", err)
	}
	return data, nil
}

// Decode parses a stored product document, as returned by FT.SEARCH.
func Decode(data []byte) (domprod.Product, error) {
	var d productDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return domprod.Product{}, fmt.Errorf("unmarshal product: %w", err)
	}
	return d.toDomain(), nil
}

// decodeJSONPath parses a JSON.GET $ reply, which wraps the document in an array.
func decodeJSONPath(data []byte) (domprod.Product, bool, error) {
	var docs []productDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return domprod.Product{}, false, fmt.Errorf("unmarshal product: %w", err)
	}
	if len(docs) == 0 {
		return domprod.Product{}, false, nil
	}
	return docs[0].toDomain(), true, nil
}
