package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/cart"
)

const (
	CartSubmittedEventName    = "CartSubmitted"
	CartSubmittedEventVersion = 1
	cartSubmittedSchema       = "contracts/events/cart/CartSubmitted.v1.payload.schema.json"
)

type SubmittedItem struct {
	MealID   int64           `json:"mealId"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type CartSubmittedPayload struct {
	RestaurantID int64           `json:"restaurantId"`
	Items        []SubmittedItem `json:"items"`
	ItemCount    int             `json:"itemCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	SubmittedAt  time.Time       `json:"submittedAt"`
}

type CartSubmittedEnvelope = EventEnvelope[CartSubmittedPayload]

func newCartSubmittedEvent(s cart.Snapshot, restaurantID int64, seq int64, producer string, meta EnvelopeMetadata, now time.Time) CartSubmittedEnvelope {
	if meta.CorrelationID == "" {
		meta.CorrelationID = uuid.NewString()
	}

	items := make([]SubmittedItem, 0, len(s))
	for _, it := range s {
		items = append(items, SubmittedItem{
			MealID:   it.MealID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	return CartSubmittedEnvelope{
		EventName:     CartSubmittedEventName,
		EventVersion:  CartSubmittedEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producer,
		PartitionKey:  strconv.FormatInt(restaurantID, 10),
		Sequence:      &seq,
		OccurredAt:    now,
		Schema:        cartSubmittedSchema,
		Payload: CartSubmittedPayload{
			RestaurantID: restaurantID,
			Items:        items,
			ItemCount:    s.ItemCount(),
			TotalAmount:  s.Total(),
			SubmittedAt:  now,
		},
	}
}
