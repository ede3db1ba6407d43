package catalog

import (
	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

type Analytics struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalOrders    int             `json:"totalOrders"`
	TotalCustomers int             `json:"totalCustomers"`
	AvgOrderValue  decimal.Decimal `json:"avgOrderValue"`
}

// Summarize aggregates final totals. Customers are counted by email and the
// average keeps cents.
func Summarize(orders []domain.Order) Analytics {
	a := Analytics{TotalRevenue: decimal.Zero, AvgOrderValue: decimal.Zero, TotalOrders: len(orders)}
	emails := make(map[string]struct{})
	for _, o := range orders {
		a.TotalRevenue = a.TotalRevenue.Add(o.FinalTotal)
		emails[o.CustomerEmail] = struct{}{}
	}
	a.TotalCustomers = len(emails)
	if len(orders) > 0 {
		a.AvgOrderValue = a.TotalRevenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}
	return a
}
