package cart_test

import (
	"context"
	"sync"
	"time"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/cart"
)

type CartServiceMock struct {
	AddItemsFunc func(ctx context.Context, s cart.Snapshot) error

	mu    sync.Mutex
	calls []cart.Snapshot
}

func (m *CartServiceMock) AddItems(ctx context.Context, s cart.Snapshot) error {
	m.mu.Lock()
	m.calls = append(m.calls, s)
	m.mu.Unlock()
	if m.AddItemsFunc == nil {
		return nil
	}
	return m.AddItemsFunc(ctx, s)
}

func (m *CartServiceMock) AddItemsCalls() []cart.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]cart.Snapshot(nil), m.calls...)
}

type CountSourceMock struct {
	CountFunc func(ctx context.Context) (int, error)
	calls     int
}

func (m *CountSourceMock) Count(ctx context.Context) (int, error) {
	m.calls++
	if m.CountFunc == nil {
		return 0, nil
	}
	return m.CountFunc(ctx)
}

type PublisherMock struct {
	PublishCartSubmittedFunc func(ctx context.Context, s cart.Snapshot) error
	published                []cart.Snapshot
}

func (m *PublisherMock) PublishCartSubmitted(ctx context.Context, s cart.Snapshot) error {
	m.published = append(m.published, s)
	if m.PublishCartSubmittedFunc == nil {
		return nil
	}
	return m.PublishCartSubmittedFunc(ctx, s)
}

type RecorderMock struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *RecorderMock) ObserveSubmission(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *RecorderMock) Outcomes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.outcomes...)
}
