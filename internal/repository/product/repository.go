package product

import (
	"context"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var idNamespace = uuid.MustParse("6f1c2b1e-8d7a-4c55-9a3e-2f5d0c7b9e41")

// StableID returns id when it is already a UUID and otherwise derives a
// deterministic one, so catalog ids like "1" map to the same row on every run.
func StableID(id string) string {
	if id == "" {
		return ""
	}
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return uuid.NewSHA1(idNamespace, []byte(id)).String()
}

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, f domain.ProductFields) (*domain.Product, error)
	Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error)
	// Upsert writes a full product keyed by StableID(p.ID).
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	HasStock(ctx context.Context, id string, quantity int) (bool, error)
}
