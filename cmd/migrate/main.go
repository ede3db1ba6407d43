package main

import (
	"context"
	"flag"
	"log"
	"os"

	"storefront/internal/bootstrap"
	"storefront/internal/config"
	"storefront/internal/migrate"
)

func main() {
	var (
		down    int
		version bool
	)
	flag.IntVar(&down, "down", 0, "Roll back this many migrations instead of applying")
	flag.BoolVar(&version, "version", false, "Print the applied schema version and exit")
	flag.Parse()

	cfg := config.Load()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := bootstrap.Connect(ctx, cfg)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	switch {
	case version:
		v, dirty, err := migrate.Version(ctx, pool)
		if err != nil {
			logger.Fatalf("read version: %v", err)
		}
		logger.Printf("schema version=%d dirty=%t", v, dirty)
	case down > 0:
		if err := migrate.Rollback(ctx, pool, down); err != nil {
			logger.Fatalf("rollback: %v", err)
		}
		logger.Printf("rolled back %d migration(s)", down)
	default:
		if err := migrate.Apply(ctx, pool); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		logger.Println("migrations applied")
	}
}
