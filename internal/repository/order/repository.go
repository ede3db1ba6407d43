package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// List returns orders newest first.
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	// Save records an order. An order whose id already exists is left as is.
	Save(ctx context.Context, o domain.Order) (*domain.Order, error)
}
