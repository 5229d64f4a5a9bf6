package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/badge"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/display"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/ledger"
)

// Submission outcomes reported to the Recorder.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeEmpty    = "empty"
	OutcomeInFlight = "in_flight"
)

// CartService accepts cart updates. Any non-nil error means the update was
// not applied.
type CartService interface {
	AddItems(ctx context.Context, s Snapshot) error
}

// Publisher announces accepted cart updates.
type Publisher interface {
	PublishCartSubmitted(ctx context.Context, s Snapshot) error
}

type Recorder interface {
	ObserveSubmission(outcome string, d time.Duration)
}

// Deps wires a Controller. Badge, Recorder and Publisher are optional.
type Deps struct {
	Ledger   *ledger.Ledger
	Surface  display.Surface
	Notifier display.Notifier
	Service  CartService
	Badge    *badge.Indicator
	State    *SubmissionState
	Logger   *slog.Logger

	Recorder  Recorder
	Publisher Publisher
}

// Controller drives the submit button and pushes the ledger to the cart
// service. It is safe for concurrent use; the lock is not held while the
// cart service is being called.
type Controller struct {
	mu       sync.Mutex
	ledger   *ledger.Ledger
	surface  display.Surface
	notifier display.Notifier
	service  CartService
	badge    *badge.Indicator
	state    *SubmissionState
	logger   *slog.Logger
	recorder Recorder
	pub      Publisher
	inFlight bool
}

func NewController(d Deps) *Controller {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	state := d.State
	if state == nil {
		state = new(SubmissionState)
	}

	c := &Controller{
		ledger:   d.Ledger,
		surface:  d.Surface,
		notifier: d.Notifier,
		service:  d.Service,
		badge:    d.Badge,
		state:    state,
		logger:   logger,
		recorder: d.Recorder,
		pub:      d.Publisher,
	}

	c.mu.Lock()
	c.refreshButtonLocked()
	c.mu.Unlock()
	return c
}

// Adjust changes an item's quantity and re-evaluates the submit button.
// The id must belong to the ledger.
func (c *Controller) Adjust(id int64, delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := c.ledger.Adjust(id, delta)
	c.refreshButtonLocked()
	return q
}

// Has reports whether id is an item of this page.
func (c *Controller) Has(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Has(id)
}

// Snapshot returns the lines that a submit would send right now.
func (c *Controller) Snapshot(restaurantID int64) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewSnapshot(c.ledger.Positive(), restaurantID)
}

// Submit sends the current selection to the cart service. On success the
// state moves to Submitted, the ledger is cleared and the badge refreshed.
// On failure the user is notified and nothing else changes.
//
// Cancellation of ctx is ignored: once started, a submission runs until the
// cart service answers or the HTTP client times out. Values such as the
// correlation id are kept.
func (c *Controller) Submit(ctx context.Context, restaurantID int64) error {
	start := time.Now()
	ctx = context.WithoutCancel(ctx)

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		c.observe(OutcomeInFlight, start)
		return ErrSubmissionInFlight
	}
	snap := NewSnapshot(c.ledger.Positive(), restaurantID)
	if len(snap) == 0 {
		c.mu.Unlock()
		c.observe(OutcomeEmpty, start)
		return ErrEmptySnapshot
	}
	c.inFlight = true
	c.refreshButtonLocked()
	c.mu.Unlock()

	err := c.service.AddItems(ctx, snap)

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		c.refreshButtonLocked()
		c.mu.Unlock()

		c.logger.Warn("cart submission failed",
			"restaurant_id", restaurantID,
			"lines", len(snap),
			"error", err,
		)
		if c.notifier != nil {
			c.notifier.Notify(FailureNotice)
		}
		c.observe(OutcomeFailure, start)
		return &SubmissionError{Items: len(snap), Err: err}
	}

	*c.state = Submitted
	c.ledger.Reset()
	c.refreshButtonLocked()
	c.mu.Unlock()

	c.logger.Info("cart submitted",
		"restaurant_id", restaurantID,
		"lines", len(snap),
		"items", snap.ItemCount(),
	)

	if c.badge != nil {
		if _, err := c.badge.Refresh(ctx); err != nil {
			c.logger.Warn("cart count refresh failed", "error", err)
		}
	}
	if c.pub != nil {
		if err := c.pub.PublishCartSubmitted(ctx, snap); err != nil {
			c.logger.Error("publish cart submitted", "restaurant_id", restaurantID, "error", err)
		}
	}

	c.observe(OutcomeSuccess, start)
	return nil
}

func (c *Controller) State() SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.state
}

func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// ButtonEnabled reports whether the submit button is currently enabled.
func (c *Controller) ButtonEnabled() bool {
	return !display.Flag(c.surface, display.ButtonDisabledKey)
}

func (c *Controller) ButtonLabel() string {
	return display.Text(c.surface, display.ButtonLabelKey)
}

// Items returns the ledger lines under the controller's lock.
func (c *Controller) Items() []ledger.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Items()
}

func (c *Controller) Total() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Total()
}

func (c *Controller) refreshButtonLocked() {
	c.surface.SetField(display.ButtonLabelKey, c.state.ButtonLabel())
	display.SetFlag(c.surface, display.ButtonDisabledKey, c.inFlight || !c.ledger.AnyPositiveQuantity())
}

func (c *Controller) observe(outcome string, start time.Time) {
	if c.recorder != nil {
		c.recorder.ObserveSubmission(outcome, time.Since(start))
	}
}
