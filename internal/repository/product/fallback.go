package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

var fallbackCreatedAt = time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)

var fallbackProducts = []domain.Product{
	{
		ID:          "1",
		Name:        "I Dare to Stand Out",
		Description: "Unisex minimalist typography tee with universal appeal",
		Price:       decimal.NewFromInt(8500),
		Category:    "tees",
		Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500&h=500&fit=crop",
		Colors:      []string{"#000000", "#FFFFFF", "#8B4513"},
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Stock:       25,
		Featured:    true,
		CreatedAt:   fallbackCreatedAt.Add(3 * time.Hour),
	},
	{
		ID:          "2",
		Name:        "Ambitious and Anointed",
		Description: "Female-cut empowering tee for the bold visionary",
		Price:       decimal.NewFromInt(8500),
		Category:    "tees",
		Image:       "https://images.unsplash.com/photo-1523293182086-7651a899d37f?w=500&h=500&fit=crop",
		Colors:      []string{"#000000", "#FFFFFF"},
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Stock:       18,
		Featured:    true,
		CreatedAt:   fallbackCreatedAt.Add(2 * time.Hour),
	},
	{
		ID:          "3",
		Name:        "Fierce and Fearless",
		Description: "Bold statement tee for those who dare differently",
		Price:       decimal.NewFromInt(8500),
		Category:    "tees",
		Image:       "https://images.unsplash.com/photo-1503341320519-c92dcca89b13?w=500&h=500&fit=crop",
		Colors:      []string{"#8B0000", "#000000", "#FFFFFF"},
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Stock:       12,
		Featured:    true,
		CreatedAt:   fallbackCreatedAt.Add(time.Hour),
	},
	{
		ID:          "4",
		Name:        "Mashafy Reflection Journal",
		Description: "Premium journal for intentional living and daily clarity",
		Price:       decimal.NewFromInt(12000),
		Category:    "journals",
		Image:       "https://images.unsplash.com/photo-1507842217343-583f20270319?w=500&h=500&fit=crop",
		Colors:      []string{"#8B4513", "#000000"},
		Stock:       40,
		Featured:    true,
		CreatedAt:   fallbackCreatedAt,
	},
}

// FallbackProducts returns a fresh copy of the static catalog.
func FallbackProducts() []domain.Product {
	return domain.CloneProducts(fallbackProducts)
}

type fallbackRepo struct {
	now func() time.Time
}

// NewFallback serves the static catalog. Writes report success and
// synthesize a record, but nothing is stored.
func NewFallback() Repository {
	return &fallbackRepo{now: time.Now}
}

func (r *fallbackRepo) List(_ context.Context) ([]domain.Product, error) {
	return FallbackProducts(), nil
}

func (r *fallbackRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range fallbackProducts {
		if p.ID == id {
			c := p.Clone()
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fallbackRepo) Create(_ context.Context, f domain.ProductFields) (*domain.Product, error) {
	now := r.now()
	p := f.Apply(domain.Product{
		ID:        fmt.Sprintf("local-%d", now.UnixMilli()),
		CreatedAt: now.UTC(),
	})
	return &p, nil
}

func (r *fallbackRepo) Update(_ context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	p := f.Apply(domain.Product{ID: id})
	return &p, nil
}

func (r *fallbackRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	out := p.Clone()
	if out.ID == "" {
		out.ID = fmt.Sprintf("local-%d", r.now().UnixMilli())
	}
	return &out, nil
}

func (r *fallbackRepo) Delete(_ context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrNotFound
	}
	return nil
}

func (r *fallbackRepo) HasStock(_ context.Context, _ string, _ int) (bool, error) {
	return true, nil
}
