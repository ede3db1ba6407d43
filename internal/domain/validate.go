package domain

import (
	"fmt"
	"strings"
)

// CategoryPolicy decides which categories a storefront accepts.
type CategoryPolicy interface {
	AllowsCategory(category string) bool
}

// Validate checks the admin form rules. Violations wrap ErrInvalidInput and
// name every failing field.
func (f ProductFields) Validate(policy CategoryPolicy) error {
	var problems []string
	if strings.TrimSpace(f.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !f.Price.IsPositive() {
		problems = append(problems, "price must be greater than zero")
	}
	if strings.TrimSpace(f.Image) == "" {
		problems = append(problems, "image is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		problems = append(problems, "description is required")
	}
	if f.Stock < 0 {
		problems = append(problems, "stock cannot be negative")
	}
	if policy != nil && !policy.AllowsCategory(f.Category) {
		problems = append(problems, fmt.Sprintf("category %q is not allowed", f.Category))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
