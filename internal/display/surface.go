// Package display models the ordering page as an addressable set of text
// fields. The ledger and the submission controller only ever read and write
// fields through a Surface, so they run without a rendering environment.
package display

import (
	"strconv"
	"sync"
)

// Key addresses one field of the page.
type Key string

const (
	TotalKey          Key = "restaurant-total"
	ButtonLabelKey    Key = "add-cart-btn.label"
	ButtonDisabledKey Key = "add-cart-btn.disabled"
	BadgeTextKey      Key = "cart-count.text"
	BadgeVisibleKey   Key = "cart-count.visible"
)

func QuantityKey(id int64) Key { return itemKey("qty-", id) }
func AmountKey(id int64) Key   { return itemKey("amt-", id) }
func PriceKey(id int64) Key    { return itemKey("price-", id) }
func NameKey(id int64) Key     { return itemKey("name-", id) }

func itemKey(prefix string, id int64) Key {
	return Key(prefix + strconv.FormatInt(id, 10))
}

// Surface is the field store the page core reads from and writes to.
type Surface interface {
	Field(key Key) (string, bool)
	SetField(key Key, value string)
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Notify(message string)
}

// MaxNotices is how many notices a Memory keeps; older ones are dropped.
const MaxNotices = 10

// Memory is an in-process Surface that also records notices.
type Memory struct {
	mu      sync.RWMutex
	fields  map[Key]string
	notices []string
}

var (
	_ Surface  = (*Memory)(nil)
	_ Notifier = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{fields: make(map[Key]string)}
}

func (m *Memory) Field(key Key) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.fields[key]
	return v, ok
}

func (m *Memory) SetField(key Key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields[key] = value
}

func (m *Memory) Notify(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.notices) == MaxNotices {
		copy(m.notices, m.notices[1:])
		m.notices = m.notices[:MaxNotices-1]
	}
	m.notices = append(m.notices, message)
}

// Notices returns the last MaxNotices notices, oldest first.
func (m *Memory) Notices() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.notices))
	copy(out, m.notices)
	return out
}

// Text returns the field value or "" when the field is absent.
func Text(s Surface, key Key) string {
	v, _ := s.Field(key)
	return v
}

// Flag reads a boolean field; absent or malformed fields read as false.
func Flag(s Surface, key Key) bool {
	v, ok := s.Field(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func SetFlag(s Surface, key Key, b bool) {
	s.SetField(key, strconv.FormatBool(b))
}
