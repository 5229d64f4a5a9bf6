// Package money holds the amount and count formatting shared by the ledger,
// the submission controller and the cart-count badge.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places amounts are kept and shown with.
const Places = 2

// Zero is the display form of an empty amount.
const Zero = "0.00"

// LineAmount returns price × quantity rounded to Places.
// An invalid price yields zero.
func LineAmount(price decimal.NullDecimal, quantity int) decimal.Decimal {
	if !price.Valid {
		return decimal.Zero
	}
	return price.Decimal.Mul(decimal.NewFromInt(int64(quantity))).Round(Places)
}

func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// ParseAmount reads a display amount. Empty, malformed and non-finite
// values report ok=false so callers can treat them as zero.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParsePrice reads a price field into a NullDecimal; anything that is not a
// non-negative number is reported as unavailable.
func ParsePrice(s string) decimal.NullDecimal {
	d, ok := ParseAmount(s)
	if !ok || d.IsNegative() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Sum adds the given display amounts, skipping the ones that do not parse.
func Sum(amounts ...string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		if d, ok := ParseAmount(a); ok {
			total = total.Add(d)
		}
	}
	return total
}

func FormatCount(n int) string {
	return strconv.Itoa(n)
}

// ParseCount reads the plain-text item count returned by the cart service.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse cart count %q: %w", s, err)
	}
	return n, nil
}
