package order

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func fallbackOrders(now time.Time) []domain.Order {
	line := func(id, name, category string, price int64, qty int, size, color string) domain.CartLine {
		return domain.CartLine{
			Product:       domain.Product{ID: id, Name: name, Category: category, Price: decimal.NewFromInt(price)},
			Quantity:      qty,
			SelectedSize:  size,
			SelectedColor: color,
		}
	}
	return []domain.Order{
		{
			ID:            "mock-001",
			CustomerName:  "Chioma Okonkwo",
			CustomerEmail: "chioma@example.com",
			CustomerPhone: "+2348012345678",
			Items:         []domain.CartLine{line("1", "I Dare to Stand Out", "tees", 8500, 2, "L", "#000000")},
			TotalPrice:    decimal.NewFromInt(17000),
			ShippingCost:  decimal.NewFromInt(2000),
			Tax:           decimal.NewFromInt(1425),
			FinalTotal:    decimal.NewFromInt(20425),
			Status:        domain.OrderProcessing,
			CreatedAt:     now,
		},
		{
			ID:            "mock-002",
			CustomerName:  "Taiwo Adeleke",
			CustomerEmail: "taiwo@example.com",
			CustomerPhone: "+2348087654321",
			Items:         []domain.CartLine{line("4", "Mashafy Reflection Journal", "journals", 12000, 1, "", "")},
			TotalPrice:    decimal.NewFromInt(12000),
			ShippingCost:  decimal.NewFromInt(2000),
			Tax:           decimal.NewFromInt(1050),
			FinalTotal:    decimal.NewFromInt(15050),
			Status:        domain.OrderPending,
			CreatedAt:     now.Add(-24 * time.Hour),
		},
		{
			ID:            "mock-003",
			CustomerName:  "Amara Nwankwo",
			CustomerEmail: "amara@example.com",
			CustomerPhone: "+2348134567890",
			Items:         []domain.CartLine{line("2", "Ambitious and Anointed", "tees", 8500, 1, "S", "#FFFFFF")},
			TotalPrice:    decimal.NewFromInt(8500),
			ShippingCost:  decimal.NewFromInt(2000),
			Tax:           decimal.NewFromInt(788),
			FinalTotal:    decimal.NewFromInt(11288),
			Status:        domain.OrderDelivered,
			CreatedAt:     now.Add(-48 * time.Hour),
		},
	}
}

type fallbackRepo struct {
	orders []domain.Order
}

// NewFallback serves three sample orders anchored at the time it was built.
func NewFallback() Repository {
	return &fallbackRepo{orders: fallbackOrders(time.Now().UTC().Truncate(time.Second))}
}

// FallbackOrders returns the sample orders anchored at now.
func FallbackOrders(now time.Time) []domain.Order {
	return fallbackOrders(now)
}

func (r *fallbackRepo) List(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, len(r.orders))
	for i, o := range r.orders {
		o.Items = append([]domain.CartLine(nil), o.Items...)
		out[i] = o
	}
	return out, nil
}

// UpdateStatus echoes the change without storing it.
func (r *fallbackRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			o.Items = append([]domain.CartLine(nil), o.Items...)
			return &o, nil
		}
	}
	return &domain.Order{ID: id, Status: status}, nil
}

// Save echoes the order without storing it.
func (r *fallbackRepo) Save(_ context.Context, o domain.Order) (*domain.Order, error) {
	if o.ID == "" {
		o.ID = fmt.Sprintf("local-%d", time.Now().UnixMilli())
	}
	if o.Status == "" {
		o.Status = domain.OrderPending
	}
	return &o, nil
}
