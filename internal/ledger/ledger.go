// Package ledger keeps the working quantity of every selectable menu item on
// an ordering page and derives the per-item amounts and the grand total.
//
// Quantities are owned by the Ledger. Prices, names, amounts and the total are
// display fields: the Ledger writes them to its display.Surface and reads them
// back from it, so gaps or garbage in those fields degrade to zero instead of
// failing. Amounts are rounded to cents when stored and the total is the sum
// of the stored amounts.
//
// A Ledger is not safe for concurrent use; the submission controller
// serializes access to it.
package ledger

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/display"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/money"
)

// LineItem is one selectable menu item and its chosen quantity.
type LineItem struct {
	ID        int64
	Name      string
	UnitPrice decimal.NullDecimal
	Quantity  int
}

// Amount is UnitPrice × Quantity rounded to cents; zero without a price.
func (it LineItem) Amount() decimal.Decimal {
	return money.LineAmount(it.UnitPrice, it.Quantity)
}

type Ledger struct {
	surface    display.Surface
	order      []int64
	quantities map[int64]int
}

// New seeds the surface with the given items in menu order and computes the
// initial amounts and total. Duplicate ids keep their first occurrence.
func New(surface display.Surface, items []LineItem) *Ledger {
	l := &Ledger{
		surface:    surface,
		order:      make([]int64, 0, len(items)),
		quantities: make(map[int64]int, len(items)),
	}

	for _, it := range items {
		if _, dup := l.quantities[it.ID]; dup {
			continue
		}
		q := max(it.Quantity, 0)
		l.order = append(l.order, it.ID)
		l.quantities[it.ID] = q

		price := ""
		if it.UnitPrice.Valid {
			price = money.Format(it.UnitPrice.Decimal)
		}
		surface.SetField(display.PriceKey(it.ID), price)
		surface.SetField(display.NameKey(it.ID), it.Name)
		surface.SetField(display.QuantityKey(it.ID), money.FormatCount(q))
		l.writeAmount(it.ID)
	}

	l.RecalculateTotal()
	return l
}

// Has reports whether id is one of the ledger's items.
func (l *Ledger) Has(id int64) bool {
	_, ok := l.quantities[id]
	return ok
}

func (l *Ledger) Len() int { return len(l.order) }

// Adjust adds delta to the item's quantity, never going below zero, and
// refreshes that item's amount and the grand total. It returns the new
// quantity. The quantity saturates at math.MaxInt. Adjusting an unknown id
// panics.
func (l *Ledger) Adjust(id int64, delta int) int {
	q := addQuantity(l.mustQuantity(id), delta)
	l.quantities[id] = q
	l.surface.SetField(display.QuantityKey(id), money.FormatCount(q))

	l.writeAmount(id)
	l.RecalculateTotal()
	return q
}

func (l *Ledger) Quantity(id int64) int {
	return l.mustQuantity(id)
}

// AmountOf returns price × quantity for the item formatted with two decimals,
// or "0.00" when the item's price field is missing or unreadable.
func (l *Ledger) AmountOf(id int64) string {
	return money.Format(l.item(id).Amount())
}

// RecalculateTotal sums the stored amount fields, skipping any that do not
// parse, writes the result to the total field and returns it.
func (l *Ledger) RecalculateTotal() decimal.Decimal {
	amounts := make([]string, 0, len(l.order))
	for _, id := range l.order {
		amounts = append(amounts, display.Text(l.surface, display.AmountKey(id)))
	}
	total := money.Sum(amounts...)
	l.surface.SetField(display.TotalKey, money.Format(total))
	return total
}

// Total returns the grand total as currently displayed.
func (l *Ledger) Total() string {
	return display.Text(l.surface, display.TotalKey)
}

// Reset zeroes every quantity and amount and recomputes the total.
func (l *Ledger) Reset() {
	for _, id := range l.order {
		l.quantities[id] = 0
		l.surface.SetField(display.QuantityKey(id), money.FormatCount(0))
		l.surface.SetField(display.AmountKey(id), money.Zero)
	}
	l.RecalculateTotal()
}

func (l *Ledger) AnyPositiveQuantity() bool {
	for _, id := range l.order {
		if l.quantities[id] > 0 {
			return true
		}
	}
	return false
}

// Items returns every item in menu order with its current price, name and
// quantity.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.item(id))
	}
	return out
}

// Positive returns the items with a quantity above zero, in menu order.
func (l *Ledger) Positive() []LineItem {
	var out []LineItem
	for _, id := range l.order {
		if l.quantities[id] > 0 {
			out = append(out, l.item(id))
		}
	}
	return out
}

func (l *Ledger) item(id int64) LineItem {
	return LineItem{
		ID:        id,
		Name:      display.Text(l.surface, display.NameKey(id)),
		UnitPrice: money.ParsePrice(display.Text(l.surface, display.PriceKey(id))),
		Quantity:  l.mustQuantity(id),
	}
}

func (l *Ledger) writeAmount(id int64) {
	l.surface.SetField(display.AmountKey(id), l.AmountOf(id))
}

// addQuantity adds delta to a non-negative quantity, clamping to
// [0, math.MaxInt].
func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(q+delta, 0)
}

func (l *Ledger) mustQuantity(id int64) int {
	q, ok := l.quantities[id]
	if !ok {
		panic(fmt.Sprintf("ledger: unknown item id %d", id))
	}
	return q
}
