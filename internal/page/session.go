package page

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/badge"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/display"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/menu"
)

var (
	ErrSessionNotFound = errors.New("page session not found")
	ErrItemNotFound    = errors.New("meal is not on this page")
)

// Session is one open ordering page: its display surface, ledger and
// submission state, plus the cart client that carries its cookies.
type Session struct {
	ID         string
	Restaurant menu.Restaurant

	surface *display.Memory
	ctrl    *cart.Controller
	badge   *badge.Indicator
	state   cart.SubmissionState

	mu         sync.Mutex
	lastAccess time.Time
}

// Adjust changes the quantity of one meal. Unknown meals are rejected
// before they reach the ledger.
func (s *Session) Adjust(mealID int64, delta int) (int, error) {
	if !s.ctrl.Has(mealID) {
		return 0, ErrItemNotFound
	}
	return s.ctrl.Adjust(mealID, delta), nil
}

func (s *Session) Submit(ctx context.Context) error {
	return s.ctrl.Submit(ctx, s.Restaurant.ID)
}

// RefreshCartCount re-reads the cart count badge, e.g. after the cart was
// changed from another page.
func (s *Session) RefreshCartCount(ctx context.Context) error {
	_, err := s.badge.Refresh(ctx)
	return err
}

func (s *Session) State() cart.SubmissionState { return s.ctrl.State() }

func (s *Session) Surface() display.Surface { return s.surface }

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccess = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}
