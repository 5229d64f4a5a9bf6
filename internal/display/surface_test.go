package display

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemKeys(t *testing.T) {
	assert.Equal(t, Key("qty-7"), QuantityKey(7))
	assert.Equal(t, Key("amt-7"), AmountKey(7))
	assert.Equal(t, Key("price-7"), PriceKey(7))
	assert.Equal(t, Key("name-7"), NameKey(7))
}

func TestMemoryFields(t *testing.T) {
	m := NewMemory()

	_, ok := m.Field(TotalKey)
	assert.False(t, ok)
	assert.Equal(t, "", Text(m, TotalKey))

	m.SetField(TotalKey, "12.00")
	assert.Equal(t, "12.00", Text(m, TotalKey))

	assert.False(t, Flag(m, ButtonDisabledKey))
	SetFlag(m, ButtonDisabledKey, true)
	assert.True(t, Flag(m, ButtonDisabledKey))

	m.SetField(BadgeVisibleKey, "maybe")
	assert.False(t, Flag(m, BadgeVisibleKey))
}

func TestMemoryNotices(t *testing.T) {
	m := NewMemory()
	m.Notify("first")
	m.Notify("second")

	got := m.Notices()
	assert.Equal(t, []string{"first", "second"}, got)

	got[0] = "changed"
	assert.Equal(t, "first", m.Notices()[0])
}

func TestMemoryNoticesAreCapped(t *testing.T) {
	m := NewMemory()
	for i := 0; i < MaxNotices+5; i++ {
		m.Notify(strconv.Itoa(i))
	}

	got := m.Notices()
	assert.Len(t, got, MaxNotices)
	assert.Equal(t, "5", got[0])
	assert.Equal(t, strconv.Itoa(MaxNotices+4), got[MaxNotices-1])
}
