package ledger

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/display"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/money"
)

func price(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func newTestLedger(t *testing.T) (*Ledger, *display.Memory) {
	t.Helper()
	surface := display.NewMemory()
	l := New(surface, []LineItem{
		{ID: 1, Name: "Margherita", UnitPrice: price("10.00")},
		{ID: 2, Name: "Tiramisu", UnitPrice: price("6.50")},
		{ID: 3, Name: "Soup of the day", UnitPrice: decimal.NullDecimal{}},
	})
	return l, surface
}

func TestNewSeedsSurface(t *testing.T) {
	l, surface := newTestLedger(t)

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "10.00", display.Text(surface, display.PriceKey(1)))
	assert.Equal(t, "", display.Text(surface, display.PriceKey(3)))
	assert.Equal(t, "Tiramisu", display.Text(surface, display.NameKey(2)))
	assert.Equal(t, "0", display.Text(surface, display.QuantityKey(1)))
	assert.Equal(t, "0.00", display.Text(surface, display.AmountKey(2)))
	assert.Equal(t, "0.00", l.Total())
	assert.False(t, l.AnyPositiveQuantity())
}

func TestNewKeepsFirstDuplicateAndClampsSeed(t *testing.T) {
	surface := display.NewMemory()
	l := New(surface, []LineItem{
		{ID: 1, Name: "first", UnitPrice: price("1.00"), Quantity: -3},
		{ID: 1, Name: "second", UnitPrice: price("2.00"), Quantity: 5},
	})

	require.Equal(t, 1, l.Len())
	assert.Equal(t, 0, l.Quantity(1))
	assert.Equal(t, "first", l.Items()[0].Name)
}

func TestAdjustScenario(t *testing.T) {
	l, surface := newTestLedger(t)

	assert.Equal(t, 2, l.Adjust(1, 2))
	assert.Equal(t, "20.00", l.AmountOf(1))
	assert.Equal(t, "20.00", display.Text(surface, display.AmountKey(1)))
	assert.Equal(t, "20.00", l.Total())
	assert.True(t, l.AnyPositiveQuantity())

	assert.Equal(t, 0, l.Adjust(1, -5))
	assert.Equal(t, "0", display.Text(surface, display.QuantityKey(1)))
	assert.Equal(t, "0.00", l.AmountOf(1))
	assert.Equal(t, "0.00", l.Total())
	assert.False(t, l.AnyPositiveQuantity())
}

func TestAdjustWithoutPrice(t *testing.T) {
	l, _ := newTestLedger(t)

	l.Adjust(3, 4)
	assert.Equal(t, 4, l.Quantity(3))
	assert.Equal(t, "0.00", l.AmountOf(3))
	assert.Equal(t, "0.00", l.Total())
	assert.True(t, l.AnyPositiveQuantity())
}

func TestAdjustUnknownIDPanics(t *testing.T) {
	l, _ := newTestLedger(t)
	assert.False(t, l.Has(42))
	assert.Panics(t, func() { l.Adjust(42, 1) })
}

func TestQuantityNeverNegative(t *testing.T) {
	l, _ := newTestLedger(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		id := int64(rng.Intn(3) + 1)
		delta := rng.Intn(21) - 12
		got := l.Adjust(id, delta)
		require.GreaterOrEqual(t, got, 0)
		require.Equal(t, got, l.Quantity(id))
	}
}

func TestAdjustSaturatesOnHugeDelta(t *testing.T) {
	l, surface := newTestLedger(t)

	assert.Equal(t, 1, l.Adjust(3, 1))
	assert.Equal(t, math.MaxInt, l.Adjust(3, math.MaxInt))
	assert.Equal(t, math.MaxInt, l.Adjust(3, 5))
	assert.Equal(t, "0.00", l.Total())

	assert.Equal(t, 0, l.Adjust(3, math.MinInt))
	assert.Equal(t, "0", display.Text(surface, display.QuantityKey(3)))
}

func TestAddQuantity(t *testing.T) {
	tests := []struct {
		name     string
		q, delta int
		want     int
	}{
		{"grow", 2, 3, 5},
		{"clamp at zero", 2, -5, 0},
		{"saturate", 1, math.MaxInt, math.MaxInt},
		{"max stays max", math.MaxInt, 1, math.MaxInt},
		{"min delta", math.MaxInt, math.MinInt, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, addQuantity(tt.q, tt.delta))
		})
	}
}

func TestAmountMatchesPriceTimesQuantity(t *testing.T) {
	l, _ := newTestLedger(t)

	for q := 0; q <= 25; q++ {
		for l.Quantity(2) < q {
			l.Adjust(2, 1)
		}
		want := decimal.RequireFromString("6.50").Mul(decimal.NewFromInt(int64(q))).StringFixed(2)
		assert.Equal(t, want, l.AmountOf(2))
	}
}

func TestRecalculateTotal(t *testing.T) {
	l, surface := newTestLedger(t)
	l.Adjust(1, 3)
	l.Adjust(2, 2)

	want := money.Sum(l.AmountOf(1), l.AmountOf(2), l.AmountOf(3))
	first := l.RecalculateTotal()
	second := l.RecalculateTotal()

	assert.True(t, first.Equal(want))
	assert.True(t, first.Equal(second))
	assert.Equal(t, "43.00", display.Text(surface, display.TotalKey))
}

func TestRecalculateTotalSkipsMalformedAmounts(t *testing.T) {
	l, surface := newTestLedger(t)
	l.Adjust(1, 1)

	surface.SetField(display.AmountKey(2), "not a number")
	surface.SetField(display.AmountKey(3), "NaN")

	assert.Equal(t, "10.00", money.Format(l.RecalculateTotal()))
	assert.Equal(t, "10.00", l.Total())
}

func TestMissingPriceFieldReadsAsZero(t *testing.T) {
	l, surface := newTestLedger(t)
	surface.SetField(display.PriceKey(1), "ten")

	l.Adjust(1, 2)
	assert.Equal(t, "0.00", l.AmountOf(1))
}

func TestReset(t *testing.T) {
	l, surface := newTestLedger(t)
	l.Adjust(1, 2)
	l.Adjust(2, 1)
	l.Adjust(3, 7)

	l.Reset()

	for _, it := range l.Items() {
		assert.Equal(t, 0, it.Quantity)
		assert.Equal(t, "0.00", display.Text(surface, display.AmountKey(it.ID)))
		assert.Equal(t, "0", display.Text(surface, display.QuantityKey(it.ID)))
	}
	assert.Equal(t, "0.00", l.Total())
	assert.False(t, l.AnyPositiveQuantity())
}

func TestAnyPositiveMatchesNonZeroTotal(t *testing.T) {
	surface := display.NewMemory()
	l := New(surface, []LineItem{
		{ID: 1, Name: "a", UnitPrice: price("1.25")},
		{ID: 2, Name: "b", UnitPrice: price("3.00")},
	})
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		l.Adjust(int64(rng.Intn(2)+1), rng.Intn(5)-2)
		assert.Equal(t, l.AnyPositiveQuantity(), !l.RecalculateTotal().IsZero())
	}
}

func TestPositiveKeepsMenuOrder(t *testing.T) {
	l, _ := newTestLedger(t)
	l.Adjust(3, 1)
	l.Adjust(1, 2)

	got := l.Positive()
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, "Margherita", got[0].Name)
	assert.True(t, got[0].UnitPrice.Decimal.Equal(decimal.RequireFromString("10")))
	assert.Equal(t, int64(3), got[1].ID)
	assert.False(t, got[1].UnitPrice.Valid)
}
