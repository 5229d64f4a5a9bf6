// Package badge keeps the site-wide cart-count indicator in step with the
// cart service.
package badge

import (
	"context"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/display"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/money"
)

// CountSource returns the number of items held in the server-side cart.
type CountSource interface {
	Count(ctx context.Context) (int, error)
}

type Indicator struct {
	source  CountSource
	surface display.Surface
}

func New(source CountSource, surface display.Surface) *Indicator {
	return &Indicator{source: source, surface: surface}
}

// Refresh queries the cart count and shows it. A failed query leaves the
// badge untouched.
func (i *Indicator) Refresh(ctx context.Context) (int, error) {
	n, err := i.source.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("refresh cart count: %w", err)
	}
	Show(i.surface, n)
	return n, nil
}

// Show displays n on the badge, hiding it when the cart is empty.
func Show(s display.Surface, n int) {
	if n <= 0 {
		display.SetFlag(s, display.BadgeVisibleKey, false)
		return
	}
	s.SetField(display.BadgeTextKey, money.FormatCount(n))
	display.SetFlag(s, display.BadgeVisibleKey, true)
}
