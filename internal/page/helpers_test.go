package page

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/menu"
)

type fakeMenu struct {
	restaurants map[int64]menu.Restaurant
	meals       map[int64][]menu.Meal
}

func (f *fakeMenu) GetRestaurant(_ context.Context, id int64) (menu.Restaurant, error) {
	r, ok := f.restaurants[id]
	if !ok {
		return menu.Restaurant{}, menu.ErrNotFound
	}
	return r, nil
}

func (f *fakeMenu) ListMeals(_ context.Context, restaurantID int64) ([]menu.Meal, error) {
	return f.meals[restaurantID], nil
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func newFakeMenu() *fakeMenu {
	return &fakeMenu{
		restaurants: map[int64]menu.Restaurant{1: {ID: 1, Name: "Trattoria"}},
		meals: map[int64][]menu.Meal{
			1: {
				{ID: 10, RestaurantID: 1, Name: "Margherita", Price: price("10.00"), Position: 1},
				{ID: 11, RestaurantID: 1, Name: "Caesar Salad", Price: price("6.50"), Position: 2},
				{ID: 12, RestaurantID: 1, Name: "Chef's Special", Position: 3},
			},
		},
	}
}

type addRequest struct {
	MealID       int64   `json:"mealId"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Name         string  `json:"name"`
	RestaurantID int64   `json:"restaurantId"`
}

// cartStub is an in-memory cart service keyed by session cookie.
type cartStub struct {
	mu       sync.Mutex
	fail     bool
	delay    time.Duration
	counts   map[string]int
	requests [][]addRequest
	nextID   int
	srv      *httptest.Server
}

func newCartStub(t *testing.T) *cartStub {
	t.Helper()
	cs := &cartStub{counts: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/cart/add", cs.add)
	mux.HandleFunc("/cart/count", cs.count)
	cs.srv = httptest.NewServer(mux)
	t.Cleanup(cs.srv.Close)
	return cs
}

func (cs *cartStub) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie("SESSION"); err == nil {
		return c.Value
	}
	cs.nextID++
	id := strconv.Itoa(cs.nextID)
	http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: id, Path: "/"})
	return id
}

func (cs *cartStub) add(w http.ResponseWriter, r *http.Request) {
	delay, ok := cs.apply(w, r)
	if !ok {
		return
	}
	// the update is recorded before the slow answer
	time.Sleep(delay)
	w.WriteHeader(http.StatusOK)
}

func (cs *cartStub) apply(w http.ResponseWriter, r *http.Request) (time.Duration, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.fail {
		http.Error(w, "cart unavailable", http.StatusInternalServerError)
		return 0, false
	}
	var items []addRequest
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	id := cs.session(w, r)
	cs.requests = append(cs.requests, items)
	for _, it := range items {
		cs.counts[id] += it.Quantity
	}
	return cs.delay, true
}

func (cs *cartStub) count(w http.ResponseWriter, r *http.Request) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	id := cs.session(w, r)
	_, _ = io.WriteString(w, strconv.Itoa(cs.counts[id]))
}

func (cs *cartStub) setFail(b bool) {
	cs.mu.Lock()
	cs.fail = b
	cs.mu.Unlock()
}

func (cs *cartStub) setDelay(d time.Duration) {
	cs.mu.Lock()
	cs.delay = d
	cs.mu.Unlock()
}

func (cs *cartStub) lastRequest() []addRequest {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if len(cs.requests) == 0 {
		return nil
	}
	return cs.requests[len(cs.requests)-1]
}

func (cs *cartStub) requestCount() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.requests)
}

func (cs *cartStub) newBackend() CartBackend {
	return clients.NewCartClient(clients.NewClient("cart", cs.srv.URL, clients.NewSessionHTTPClient(5*time.Second)))
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }
