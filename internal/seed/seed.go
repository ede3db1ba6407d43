// Package seed loads the storefront's starter catalog into the remote store.
package seed

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
)

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type OrderWriter interface {
	Save(ctx context.Context, o domain.Order) (*domain.Order, error)
}

type Result struct {
	Products int
	Orders   int
}

// Apply upserts the starter products and, when orders is non-nil, the sample
// orders. Running it twice leaves the same rows behind.
func Apply(ctx context.Context, products ProductWriter, orders OrderWriter, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var res Result
	for _, p := range productrepo.FallbackProducts() {
		if _, err := products.Upsert(ctx, p); err != nil {
			return res, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
		res.Products++
	}
	if orders == nil {
		return res, nil
	}
	for _, o := range orderrepo.FallbackOrders(time.Now().UTC()) {
		if _, err := orders.Save(ctx, o); err != nil {
			return res, fmt.Errorf("save order %s: %w", o.ID, err)
		}
		res.Orders++
	}
	logger.Printf("seed: products=%d orders=%d", res.Products, res.Orders)
	return res, nil
}
