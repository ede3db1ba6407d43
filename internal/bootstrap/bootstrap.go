// Package bootstrap assembles the catalog service from configuration, picking
// the remote store when it is configured and the fallback data otherwise.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/service/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Catalog is the assembled catalog. Pool is nil in fallback mode.
type Catalog struct {
	Service  *catalog.Service
	Products productrepo.Repository
	Orders   orderrepo.Repository
	Pool     *pgxpool.Pool
}

func (c *Catalog) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// OpenCatalog connects to the remote catalog when both its URL and key are
// set. A connection failure is returned, not papered over with fallback data.
func OpenCatalog(ctx context.Context, cfg config.Config, logger *log.Logger) (*Catalog, error) {
	opts := catalog.Options{
		TTL: cfg.ProductCacheTTL,
		FallbackOrders: func() []domain.Order {
			return orderrepo.FallbackOrders(time.Now().UTC())
		},
	}

	if !cfg.RemoteConfigured() {
		logger.Printf("catalog: remote store not configured, serving fallback data")
		products := productrepo.NewFallback()
		orders := orderrepo.NewFallback()
		return &Catalog{
			Service:  catalog.New(products, orders, opts, logger),
			Products: products,
			Orders:   orders,
		}, nil
	}

	pool, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	products := productrepo.NewPostgres(pool, logger)
	orders := orderrepo.NewPostgres(pool, logger)
	opts.Remote = true
	logger.Printf("catalog: using remote store ttl=%s", opts.TTL)
	return &Catalog{
		Service:  catalog.New(products, orders, opts, logger),
		Products: products,
		Orders:   orders,
		Pool:     pool,
	}, nil
}

// Connect opens the remote catalog pool from the URL and key.
func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if !cfg.RemoteConfigured() {
		return nil, fmt.Errorf("catalog: CATALOG_DB_URL and CATALOG_DB_KEY must both be set")
	}
	dsn, err := db.DSN(cfg.CatalogURL, cfg.CatalogKey)
	if err != nil {
		return nil, err
	}
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: connect: %w", err)
	}
	return pool, nil
}
