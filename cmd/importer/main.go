package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"storefront/internal/bootstrap"
	"storefront/internal/brand"
	"storefront/internal/config"
	"storefront/internal/importer"
	"storefront/internal/repository/product"
)

func main() {
	var (
		filePath string
		brandKey string
	)
	flag.StringVar(&filePath, "file", "", "Path to the product CSV")
	flag.StringVar(&brandKey, "brand", "", "Brand whose category rules apply (defaults to BRAND)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if brandKey == "" {
		brandKey = cfg.Brand
	}
	ctx := context.Background()

	pool, err := bootstrap.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	b := brand.Lookup(brandKey)
	imp := importer.NewCSVImporter(f, product.NewPostgres(pool, nil), b)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed after %d products: %v", count, err)
	}

	fmt.Printf("Imported %d products for %s in %s\n", count, b.Name, time.Since(start).Truncate(time.Millisecond))
}
