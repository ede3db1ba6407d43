package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/brand"
	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,name,description,price,category,stock,image_url,sizes,colors,featured
1,I Dare to Stand Out,Typography tee,8500,tees,25,https://example.com/1.jpg,S;M;L,#000000;#FFFFFF,true

,Reflection Journal,Daily clarity,12000.50,journals,0,https://example.com/4.jpg,,,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, brand.Mashafy)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 || len(repo.items) != 2 {
		t.Fatalf("expected 2 products imported, got %d (%d saved)", count, len(repo.items))
	}

	first := repo.items[0]
	if first.ID != "1" || len(first.Sizes) != 3 || len(first.Colors) != 2 || !first.Featured || first.Stock != 25 {
		t.Fatalf("unexpected first product %+v", first)
	}
	second := repo.items[1]
	if second.ID != "" || !second.Price.Equal(decimal.RequireFromString("12000.5")) || second.Sizes != nil || second.Featured {
		t.Fatalf("unexpected second product %+v", second)
	}
}

func TestCSVImporter_RejectsInvalidRows(t *testing.T) {
	cases := map[string]string{
		"negative stock":   "id,name,description,price,category,stock,image_url\n,Tee,Soft,100,tees,-1,https://example.com/x.jpg",
		"unknown category": "id,name,description,price,category,stock,image_url\n,Tee,Soft,100,hats,1,https://example.com/x.jpg",
		"missing image":    "id,name,description,price,category,stock,image_url\n,Tee,Soft,100,tees,1,",
		"bad price":        "id,name,description,price,category,stock,image_url\n,Tee,Soft,abc,tees,1,https://example.com/x.jpg",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &stubProductRepo{}
			_, err := NewCSVImporter(strings.NewReader(data), repo, brand.Mashafy).Run(context.Background())
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(repo.items) != 0 {
				t.Fatalf("invalid rows must not be written")
			}
		})
	}
}

func TestCSVImporter_FreeFormCategories(t *testing.T) {
	data := "name,description,price,category,image_url\nNovel,A story,4500,fiction,https://example.com/b.jpg"
	repo := &stubProductRepo{}
	count, err := NewCSVImporter(strings.NewReader(data), repo, brand.Tabitha).Run(context.Background())
	if err != nil || count != 1 {
		t.Fatalf("expected 1 import, got %d %v", count, err)
	}
}

func TestCSVImporter_MissingColumns(t *testing.T) {
	_, err := NewCSVImporter(strings.NewReader("id,description\n1,x"), &stubProductRepo{}, nil).Run(context.Background())
	if err == nil {
		t.Fatalf("expected missing column error")
	}
}
