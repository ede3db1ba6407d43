// Package checkout turns a cart into a pre-filled WhatsApp order message and
// hands the resulting deep link to an Opener. Nothing is persisted and stock
// is not checked.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"storefront/internal/brand"
	"storefront/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CustomerInfo is optional contact data entered before checkout.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (c *CustomerInfo) empty() bool {
	return c == nil || (c.Name == "" && c.Phone == "" && c.Email == "" && c.Address == "" && c.Notes == "")
}

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount with thousands separators. Fractional
// amounts are rounded half away from zero to two places.
func FormatAmount(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprintf("%d", d.IntPart())
	}
	r := d.Abs().Round(2)
	_, frac, _ := strings.Cut(r.StringFixed(2), ".")
	out := printer.Sprintf("%d", r.IntPart()) + "." + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// BuildMessage renders the human-readable order summary.
func BuildMessage(b brand.Brand, lines []domain.CartLine, finalTotal decimal.Decimal, info *CustomerInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 *%s Order*\n\n", b.Name)
	sb.WriteString("📦 *Order Items:*\n")

	for i, l := range lines {
		fmt.Fprintf(&sb, "\n%d. *%s*\n", i+1, l.Name)
		fmt.Fprintf(&sb, "   Quantity: %d | Price: %s%s", l.Quantity, b.CurrencySymbol, FormatAmount(l.Price))
		if l.SelectedSize != "" {
			fmt.Fprintf(&sb, " | Size: %s", l.SelectedSize)
		}
		if l.SelectedColor != "" {
			fmt.Fprintf(&sb, " | Color: %s", l.SelectedColor)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\n💰 *Total: %s%s*\n\n", b.CurrencySymbol, FormatAmount(finalTotal))

	if !info.empty() {
		sb.WriteString("👤 *Customer Details:*\n")
		for _, f := range []struct{ label, value string }{
			{"Name", info.Name},
			{"Phone", info.Phone},
			{"Email", info.Email},
			{"Address", info.Address},
			{"Notes", info.Notes},
		} {
			if f.value != "" {
				fmt.Fprintf(&sb, "%s: %s\n", f.label, f.value)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Please confirm your details (name, phone number, address) and we'll process your order.")
	return sb.String()
}

// Link builds the wa.me deep link. Spaces are escaped as %20.
func Link(number, msg string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return "https://wa.me/" + FormatPhoneNumber(number) + "?text=" + escaped
}

var (
	nonDigits  = regexp.MustCompile(`\D`)
	tenDigits  = regexp.MustCompile(`^(\d{10})$`)
	ErrNoItems = errors.New("checkout: cart is empty")
)

// FormatPhoneNumber strips everything but digits and prefixes a bare
// 10-digit local number with the 234 country code.
func FormatPhoneNumber(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	return tenDigits.ReplaceAllString(digits, "234$1")
}

// Opener hands a deep link to whatever can open it.
type Opener interface {
	Open(ctx context.Context, link string) error
}

type OpenerFunc func(ctx context.Context, link string) error

func (f OpenerFunc) Open(ctx context.Context, link string) error {
	return f(ctx, link)
}

// Open builds the message and link for the cart and passes the link to o.
// The number falls back to the brand's checkout number.
func Open(ctx context.Context, o Opener, b brand.Brand, number string, lines []domain.CartLine, finalTotal decimal.Decimal, info *CustomerInfo) (string, error) {
	if len(lines) == 0 {
		return "", ErrNoItems
	}
	if number == "" {
		number = b.WhatsAppNumber
	}
	link := Link(number, BuildMessage(b, lines, finalTotal, info))
	if err := o.Open(ctx, link); err != nil {
		return link, fmt.Errorf("checkout: open link: %w", err)
	}
	return link, nil
}
