package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Columns is the header the importer expects, in any order.
var Columns = []string{"id", "name", "description", "price", "category", "stock", "image_url", "sizes", "colors", "featured"}

// CSVImporter reads product rows and upserts them into the catalog. Every
// row passes the admin form rules before it is written.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
	policy      domain.CategoryPolicy
}

func NewCSVImporter(r io.Reader, repo ProductWriter, policy domain.CategoryPolicy) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
		policy:      policy,
	}
}

// Run imports every row and stops at the first invalid one.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"name", "price"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("missing column %q", required)
		}
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if err := domain.FieldsOf(p).Validate(i.policy); err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert row %d (%s): %w", line, p.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	p := domain.Product{
		ID:          pick(record, index, "id"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Category:    pick(record, index, "category"),
		Image:       pick(record, index, "image_url"),
		Sizes:       splitList(pick(record, index, "sizes")),
		Colors:      splitList(pick(record, index, "colors")),
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return p, fmt.Errorf("%w: bad price: %v", domain.ErrInvalidInput, err)
	}
	p.Price = price

	if raw := pick(record, index, "stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("%w: bad stock %q", domain.ErrInvalidInput, raw)
		}
		p.Stock = stock
	}
	if raw := pick(record, index, "featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return p, fmt.Errorf("%w: bad featured flag %q", domain.ErrInvalidInput, raw)
		}
		p.Featured = featured
	}
	return p, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
