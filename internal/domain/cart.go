package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartLine is a product snapshot taken when it was first added, plus the
// chosen quantity and variant. Lines are identified by product id alone.
type CartLine struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// LineTotal is the snapshot unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type cartLineJSON struct {
	productAlias
	InStock       bool   `json:"inStock"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// MarshalJSON flattens the product fields next to the line fields.
func (l CartLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartLineJSON{
		productAlias:  productAlias(l.Product),
		InStock:       l.InStock(),
		Quantity:      l.Quantity,
		SelectedSize:  l.SelectedSize,
		SelectedColor: l.SelectedColor,
	})
}

func (l *CartLine) UnmarshalJSON(data []byte) error {
	var raw cartLineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Product = Product(raw.productAlias)
	l.Quantity = raw.Quantity
	l.SelectedSize = raw.SelectedSize
	l.SelectedColor = raw.SelectedColor
	return nil
}

// WishlistEntry marks a product as wished for. It carries no data of its own.
type WishlistEntry struct {
	Product
}
