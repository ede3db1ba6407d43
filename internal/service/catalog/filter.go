package catalog

import (
	"sort"
	"strings"

	"storefront/internal/domain"
)

const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

type FilterOptions struct {
	// Category keeps only matching products. Empty or "all" keeps everything.
	Category string
	Sort     string
	// Search is a case-insensitive substring of the product name.
	Search string
}

// Filter returns a new slice. The input is left untouched.
func Filter(products []domain.Product, opts FilterOptions) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if opts.Category != "" && opts.Category != "all" && p.Category != opts.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p.Clone())
	}

	switch opts.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	}
	return out
}

// Featured returns the featured products in listing order.
func Featured(products []domain.Product) []domain.Product {
	out := []domain.Product{}
	for _, p := range products {
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

const (
	StockHigh   = "high"
	StockMedium = "medium"
	StockLow    = "low"
	StockOut    = "out"
)

func StockLevel(stock int) string {
	switch {
	case stock > 20:
		return StockHigh
	case stock > 10:
		return StockMedium
	case stock > 0:
		return StockLow
	default:
		return StockOut
	}
}
