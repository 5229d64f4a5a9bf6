package page

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/badge"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/display"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/ledger"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/menu"
)

// CartBackend is the cart service as seen by one page session.
type CartBackend interface {
	cart.CartService
	badge.CountSource
}

type Options struct {
	Menu menu.Repository
	// NewCart returns a backend with its own cookie session.
	NewCart   func() CartBackend
	Publisher cart.Publisher
	Recorder  cart.Recorder
	Logger    *slog.Logger
	TTL       time.Duration

	// OnSessionsChanged receives the number of open sessions after every
	// create or sweep.
	OnSessionsChanged func(n int)
	Now               func() time.Time
}

// Store keeps open page sessions in memory.
type Store struct {
	opts Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{opts: opts, sessions: make(map[string]*Session)}
}

// Create opens a page for a restaurant: the menu is loaded into a fresh
// ledger and the cart badge is read once, as on page load.
func (st *Store) Create(ctx context.Context, restaurantID int64) (*Session, error) {
	rest, err := st.opts.Menu.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	meals, err := st.opts.Menu.ListMeals(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}

	backend := st.opts.NewCart()
	surface := display.NewMemory()
	s := &Session{
		ID:         uuid.NewString(),
		Restaurant: rest,
		surface:    surface,
		badge:      badge.New(backend, surface),
		lastAccess: st.opts.Now(),
	}
	s.ctrl = cart.NewController(cart.Deps{
		Ledger:    ledger.New(surface, menu.LineItems(meals)),
		Surface:   surface,
		Notifier:  surface,
		Service:   backend,
		Badge:     s.badge,
		State:     &s.state,
		Logger:    st.opts.Logger.With("session_id", s.ID, "restaurant_id", rest.ID),
		Recorder:  st.opts.Recorder,
		Publisher: st.opts.Publisher,
	})

	if err := s.RefreshCartCount(ctx); err != nil {
		st.opts.Logger.Warn("initial cart count failed", "session_id", s.ID, "error", err)
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	n := len(st.sessions)
	st.mu.Unlock()

	st.opts.Logger.Info("page session opened", "session_id", s.ID, "restaurant_id", rest.ID, "meals", len(meals))
	st.sessionsChanged(n)
	return s, nil
}

// Get returns an open session and marks it as used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(st.opts.Now())
	return s, nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were closed. A zero TTL keeps every session.
func (st *Store) Sweep(now time.Time) int {
	if st.opts.TTL <= 0 {
		return 0
	}

	st.mu.Lock()
	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.idleSince()) > st.opts.TTL {
			delete(st.sessions, id)
			removed++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	if removed > 0 {
		st.opts.Logger.Info("page sessions expired", "removed", removed, "open", n)
		st.sessionsChanged(n)
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (st *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			st.Sweep(now)
		}
	}
}

func (st *Store) sessionsChanged(n int) {
	if st.opts.OnSessionsChanged != nil {
		st.opts.OnSessionsChanged(n)
	}
}
