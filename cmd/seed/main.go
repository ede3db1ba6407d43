package main

import (
	"context"
	"flag"
	"log"
	"os"

	"storefront/internal/bootstrap"
	"storefront/internal/config"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/seed"
)

func main() {
	var withOrders bool
	flag.BoolVar(&withOrders, "orders", false, "Also insert the sample orders")
	flag.Parse()

	cfg := config.Load()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := bootstrap.Connect(ctx, cfg)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	var orders seed.OrderWriter
	if withOrders {
		orders = orderrepo.NewPostgres(pool, logger)
	}
	res, err := seed.Apply(ctx, productrepo.NewPostgres(pool, logger), orders, logger)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied products=%d orders=%d", res.Products, res.Orders)
}
