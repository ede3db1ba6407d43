package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"storefront/internal/bootstrap"
	"storefront/internal/brand"
	"storefront/internal/cartctl"
	"storefront/internal/config"
	"storefront/internal/localstore"
)

func main() {
	cfg := config.Load()
	logger := log.New(io.Discard, "", 0)
	if os.Getenv("CARTCTL_DEBUG") != "" {
		logger = log.New(os.Stderr, "[cartctl] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	}

	ctx := context.Background()
	cat, err := bootstrap.OpenCatalog(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	storage, err := localstore.OpenSQLite(ctx, cfg.LocalStorePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer storage.Close()

	root := cartctl.NewRootCommand(&cartctl.App{
		Storage:        storage,
		Catalog:        cat.Service,
		Brand:          brand.Lookup(cfg.Brand),
		WhatsAppNumber: cfg.WhatsAppNumber,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
