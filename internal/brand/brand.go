package brand

import "strings"

// Brand is a storefront skin. Both skins share the same code paths and
// differ only in copy, checkout recipient and category policy.
type Brand struct {
	Key            string
	Name           string
	Tagline        string
	WhatsAppNumber string
	CurrencySymbol string
	// Categories is the closed category set. Empty means free-form.
	Categories []string
}

var (
	Mashafy = Brand{
		Key:            "mashafy",
		Name:           "Mashafy Lifestyle",
		Tagline:        "Premium tees and journals designed for the visionary in you",
		WhatsAppNumber: "234802784294",
		CurrencySymbol: "₦",
		Categories:     []string{"tees", "journals"},
	}
	Tabitha = Brand{
		Key:            "tabitha",
		Name:           "Tabitha Books",
		Tagline:        "Books worth keeping",
		WhatsAppNumber: "234802784294",
		CurrencySymbol: "₦",
	}
)

// Lookup returns the brand for key, falling back to Mashafy.
func Lookup(key string) Brand {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case Tabitha.Key:
		return Tabitha
	default:
		return Mashafy
	}
}

// AllowsCategory reports whether c is acceptable for this brand.
func (b Brand) AllowsCategory(c string) bool {
	c = strings.TrimSpace(c)
	if c == "" {
		return false
	}
	if len(b.Categories) == 0 {
		return true
	}
	for _, allowed := range b.Categories {
		if allowed == c {
			return true
		}
	}
	return false
}
