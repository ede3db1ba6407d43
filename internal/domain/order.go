package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is a read-only historical record shown on the admin screens.
// Items are snapshots, not live product references.
type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	Items         []CartLine      `json:"items"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	ShippingCost  decimal.Decimal `json:"shippingCost"`
	Tax           decimal.Decimal `json:"tax"`
	FinalTotal    decimal.Decimal `json:"finalTotal"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	Notes         string          `json:"notes,omitempty"`
}
