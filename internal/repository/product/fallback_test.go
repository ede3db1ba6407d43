package product

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func TestFallbackListIsStableAcrossCalls(t *testing.T) {
	repo := NewFallback()
	first, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 products, got %d", len(first))
	}

	first[0].Name = "mutated"
	first[0].Sizes[0] = "mutated"

	second, _ := repo.List(context.Background())
	if len(second) != 4 || second[0].Name != "I Dare to Stand Out" || second[0].Sizes[0] != "XS" {
		t.Fatalf("fallback dataset was mutated: %+v", second[0])
	}
}

func TestFallbackStockAgreesWithInStock(t *testing.T) {
	for _, p := range FallbackProducts() {
		if !p.InStock() || p.Stock <= 0 {
			t.Fatalf("fallback product %s should be in stock", p.ID)
		}
	}
}

func TestFallbackGetByID(t *testing.T) {
	repo := NewFallback()
	p, err := repo.GetByID(context.Background(), "4")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.Category != "journals" {
		t.Fatalf("unexpected product %+v", p)
	}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFallbackWritesSynthesizeRecords(t *testing.T) {
	repo := &fallbackRepo{now: func() time.Time { return time.UnixMilli(1700000000000) }}
	fields := domain.ProductFields{Name: "New", Description: "d", Price: decimal.NewFromInt(100), Category: "tees", Image: "img", Stock: 3}

	created, err := repo.Create(context.Background(), fields)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "local-1700000000000" || created.Name != "New" {
		t.Fatalf("unexpected created %+v", created)
	}

	updated, err := repo.Update(context.Background(), "2", fields)
	if err != nil || updated.ID != "2" || updated.Stock != 3 {
		t.Fatalf("unexpected update %+v err=%v", updated, err)
	}

	upserted, err := repo.Upsert(context.Background(), domain.Product{Name: "Imported"})
	if err != nil || upserted.ID != "local-1700000000000" {
		t.Fatalf("unexpected upsert %+v err=%v", upserted, err)
	}

	if err := repo.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	list, _ := repo.List(context.Background())
	for _, p := range list {
		if strings.HasPrefix(p.ID, "local-") {
			t.Fatalf("fallback write must not persist")
		}
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 products after writes, got %d", len(list))
	}
}

func TestRowToDomainValidates(t *testing.T) {
	good := productRow{ID: "x", Name: "n", Price: "8500.00", Stock: 0}
	p, err := good.toDomain()
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if p.InStock() || !p.Price.Equal(decimal.NewFromInt(8500)) {
		t.Fatalf("unexpected mapping %+v", p)
	}

	for _, bad := range []productRow{
		{ID: "x", Price: "abc"},
		{ID: "x", Price: "-1"},
		{ID: "x", Price: "1", Stock: -1},
	} {
		if _, err := bad.toDomain(); err == nil {
			t.Fatalf("expected error for %+v", bad)
		}
	}
}

func TestStableID(t *testing.T) {
	if StableID("") != "" {
		t.Fatalf("empty id must stay empty")
	}
	u := "00000000-0000-0000-0000-000000000001"
	if StableID(u) != u {
		t.Fatalf("uuid ids must pass through")
	}
	a, b := StableID("1"), StableID("1")
	if a != b || len(a) != 36 {
		t.Fatalf("expected a stable derived uuid, got %q and %q", a, b)
	}
	if StableID("2") == a {
		t.Fatalf("different ids must derive different uuids")
	}
}
