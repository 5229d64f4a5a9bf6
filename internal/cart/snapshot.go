package cart

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/ledger"
)

// SnapshotItem is one line of a cart update.
type SnapshotItem struct {
	MealID       int64
	Quantity     int
	Price        decimal.Decimal
	Name         string
	RestaurantID int64
}

// Snapshot is the set of ledger lines with a positive quantity at the moment
// of submission, in menu order.
type Snapshot []SnapshotItem

// NewSnapshot builds a snapshot from ledger items. Lines without a quantity
// are dropped; lines without a readable price are sent with a zero price.
func NewSnapshot(items []ledger.LineItem, restaurantID int64) Snapshot {
	var s Snapshot
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		price := decimal.Zero
		if it.UnitPrice.Valid {
			price = it.UnitPrice.Decimal
		}
		s = append(s, SnapshotItem{
			MealID:       it.ID,
			Quantity:     it.Quantity,
			Price:        price,
			Name:         it.Name,
			RestaurantID: restaurantID,
		})
	}
	return s
}

// ItemCount is the sum of all quantities.
func (s Snapshot) ItemCount() int {
	n := 0
	for _, it := range s {
		n += it.Quantity
	}
	return n
}

func (s Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
