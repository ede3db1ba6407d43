package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. InStock is derived from Stock and never stored.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	out := p
	if p.Sizes != nil {
		out.Sizes = append([]string(nil), p.Sizes...)
	}
	if p.Colors != nil {
		out.Colors = append([]string(nil), p.Colors...)
	}
	return out
}

type productJSON struct {
	productAlias
	InStock bool `json:"inStock"`
}

type productAlias Product

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{productAlias: productAlias(p), InStock: p.InStock()})
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw productJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Product(raw.productAlias)
	return nil
}

// CloneProducts copies a product list element by element.
func CloneProducts(in []Product) []Product {
	if in == nil {
		return nil
	}
	out := make([]Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// ProductFields are the admin-editable attributes of a product.
type ProductFields struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" binding:"required"`
	Image       string          `json:"image_url" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Featured    bool            `json:"featured"`
}

// Apply copies the editable fields onto p.
func (f ProductFields) Apply(p Product) Product {
	p.Name = f.Name
	p.Description = f.Description
	p.Price = f.Price
	p.Category = f.Category
	p.Image = f.Image
	p.Stock = f.Stock
	p.Sizes = append([]string(nil), f.Sizes...)
	p.Colors = append([]string(nil), f.Colors...)
	p.Featured = f.Featured
	return p
}

// FieldsOf extracts the editable fields of p.
func FieldsOf(p Product) ProductFields {
	return ProductFields{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Stock:       p.Stock,
		Sizes:       append([]string(nil), p.Sizes...),
		Colors:      append([]string(nil), p.Colors...),
		Featured:    p.Featured,
	}
}
