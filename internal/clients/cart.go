package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/money"
)

const (
	cartAddPath   = "/cart/add"
	cartCountPath = "/cart/count"
)

// CartClient talks to the cart service on behalf of one page session.
type CartClient struct{ c *Client }

func NewCartClient(c *Client) *CartClient { return &CartClient{c: c} }

type cartItemDTO struct {
	MealID       int64   `json:"mealId"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Name         string  `json:"name"`
	RestaurantID int64   `json:"restaurantId"`
}

// AddItems posts the snapshot to /cart/add. Any 2xx answer is success.
func (cc *CartClient) AddItems(ctx context.Context, s cart.Snapshot) error {
	items := make([]cartItemDTO, 0, len(s))
	for _, it := range s {
		items = append(items, cartItemDTO{
			MealID:       it.MealID,
			Quantity:     it.Quantity,
			Price:        it.Price.InexactFloat64(),
			Name:         it.Name,
			RestaurantID: it.RestaurantID,
		})
	}
	body, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := cc.c.Do(ctx, http.MethodPost, cartAddPath, bytes.NewReader(body), headers)
	if err != nil {
		return fmt.Errorf("post %s: %w", cartAddPath, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return statusError(cc.c, resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Count returns the number of items in the session's cart. A body that is
// not an integer counts as an empty cart.
func (cc *CartClient) Count(ctx context.Context) (int, error) {
	resp, err := cc.c.Do(ctx, http.MethodGet, cartCountPath, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", cartCountPath, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return 0, statusError(cc.c, resp)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", cartCountPath, err)
	}

	n, err := money.ParseCount(string(b))
	if err != nil {
		return 0, nil
	}
	return n, nil
}
