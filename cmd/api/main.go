package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/bootstrap"
	"storefront/internal/brand"
	"storefront/internal/config"
	"storefront/internal/httpserver"
	"storefront/internal/localstore"
	"storefront/internal/session"

	"github.com/gorilla/securecookie"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	cat, err := bootstrap.OpenCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open catalog: %v", err)
	}
	defer cat.Close()

	storage, err := localstore.OpenSQLite(ctx, cfg.LocalStorePath)
	if err != nil {
		logger.Fatalf("open local store: %v", err)
	}
	defer storage.Close()

	hashKey := []byte(cfg.SessionHashKey)
	if len(hashKey) == 0 {
		logger.Printf("SESSION_HASH_KEY not set, sessions will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(32)
	}

	b := brand.Lookup(cfg.Brand)
	srv, err := httpserver.New(cfg.HTTPAddr, logger, cat.Pool, httpserver.Deps{
		Catalog:        cat.Service,
		Sessions:       session.NewRegistry(storage, cfg.SessionIdleTTL, logger),
		Brand:          b,
		WhatsAppNumber: cfg.WhatsAppNumber,
		Cookies:        securecookie.New(hashKey, nil),
		CORSOrigins:    cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting %s storefront on %s", b.Name, cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
