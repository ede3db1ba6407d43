package httpserver

import (
	"storefront/internal/brand"
	"storefront/internal/domain"
	"storefront/internal/service/catalog"
	"storefront/internal/store/cart"
	"storefront/internal/store/wishlist"

	"github.com/shopspring/decimal"
)

type cartView struct {
	Items      []domain.CartLine `json:"items"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	TotalItems int               `json:"totalItems"`
	Currency   string            `json:"currency"`
}

func newCartView(s *cart.Store, b brand.Brand) cartView {
	items := s.Items()
	if items == nil {
		items = []domain.CartLine{}
	}
	return cartView{
		Items:      items,
		TotalPrice: s.TotalPrice(),
		TotalItems: s.TotalItems(),
		Currency:   b.CurrencySymbol,
	}
}

type wishlistView struct {
	Items []domain.WishlistEntry `json:"items"`
	Count int                    `json:"count"`
}

func newWishlistView(s *wishlist.Store) wishlistView {
	items := s.Items()
	if items == nil {
		items = []domain.WishlistEntry{}
	}
	return wishlistView{Items: items, Count: len(items)}
}

type brandView struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	Tagline        string   `json:"tagline"`
	Currency       string   `json:"currency"`
	Categories     []string `json:"categories"`
	WhatsAppNumber string   `json:"whatsappNumber"`
	WhatsAppURL    string   `json:"whatsappUrl"`
}

func newBrandView(b brand.Brand, number string) brandView {
	cats := b.Categories
	if cats == nil {
		cats = []string{}
	}
	return brandView{
		Key:            b.Key,
		Name:           b.Name,
		Tagline:        b.Tagline,
		Currency:       b.CurrencySymbol,
		Categories:     cats,
		WhatsAppNumber: number,
		WhatsAppURL:    "https://wa.me/" + number,
	}
}

type adminProductRow struct {
	Product    domain.Product `json:"product"`
	StockLevel string         `json:"stockLevel"`
}

func adminRows(products []domain.Product) []adminProductRow {
	rows := make([]adminProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, adminProductRow{Product: p, StockLevel: catalog.StockLevel(p.Stock)})
	}
	return rows
}

// categoriesOf lists the brand's closed set, or the categories present in
// the listing for free-form brands.
func categoriesOf(b brand.Brand, products []domain.Product) []string {
	if len(b.Categories) > 0 {
		return append([]string(nil), b.Categories...)
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
