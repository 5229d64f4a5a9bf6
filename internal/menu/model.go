package menu

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/ledger"
)

type Restaurant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Meal is one orderable line of a restaurant's menu. Price is null when the
// menu has no price for it.
type Meal struct {
	ID           int64               `json:"id"`
	RestaurantID int64               `json:"restaurantId"`
	Name         string              `json:"name"`
	Price        decimal.NullDecimal `json:"price"`
	Position     int                 `json:"position"`
}

// LineItems turns meals into zero-quantity ledger lines, keeping menu order.
func LineItems(meals []Meal) []ledger.LineItem {
	items := make([]ledger.LineItem, 0, len(meals))
	for _, m := range meals {
		items = append(items, ledger.LineItem{ID: m.ID, Name: m.Name, UnitPrice: m.Price})
	}
	return items
}
