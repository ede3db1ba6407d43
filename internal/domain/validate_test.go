package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type closedSet []string

func (c closedSet) AllowsCategory(category string) bool {
	for _, v := range c {
		if v == category {
			return true
		}
	}
	return false
}

func validFields() ProductFields {
	return ProductFields{
		Name:        "Tee",
		Description: "Soft cotton",
		Price:       decimal.NewFromInt(8500),
		Category:    "tees",
		Image:       "https://example.com/tee.jpg",
		Stock:       3,
	}
}

func TestValidateAcceptsCompleteFields(t *testing.T) {
	if err := validFields().Validate(closedSet{"tees", "journals"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := validFields().Validate(nil); err != nil {
		t.Fatalf("expected valid without policy, got %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	f := ProductFields{Price: decimal.Zero, Stock: -1, Category: "hats"}
	err := f.Validate(closedSet{"tees"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	for _, want := range []string{"name", "price", "image", "description", "stock", "hats"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %q", err, want)
		}
	}
}

func TestValidateZeroStockIsAllowed(t *testing.T) {
	f := validFields()
	f.Stock = 0
	if err := f.Validate(nil); err != nil {
		t.Fatalf("zero stock should be valid, got %v", err)
	}
}
