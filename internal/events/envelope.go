package events

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedEnvelope wraps every Validate failure.
var ErrMalformedEnvelope = errors.New("malformed event envelope")

// EventEnvelope carries one event on the ecommerce.events exchange. The
// payload is typed so publisher tests can decode straight into it.
type EventEnvelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      *int64    `json:"sequence,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
	Payload       T         `json:"payload"`
}

// EnvelopeMetadata links an event to the request that caused it.
type EnvelopeMetadata struct {
	CorrelationID string
	CausationID   string
}

// Validate checks the event name and version and that the envelope can be
// routed and deduplicated: it needs an event id, a partition key and, when
// present, a positive sequence.
func (e EventEnvelope[T]) Validate(name string, version int) error {
	switch {
	case e.EventName != name:
		return fmt.Errorf("%w: event %q, want %q", ErrMalformedEnvelope, e.EventName, name)
	case e.EventVersion != version:
		return fmt.Errorf("%w: %s version %d, want %d", ErrMalformedEnvelope, name, e.EventVersion, version)
	case e.EventID == "":
		return fmt.Errorf("%w: %s without eventId", ErrMalformedEnvelope, name)
	case e.PartitionKey == "":
		return fmt.Errorf("%w: %s without partitionKey", ErrMalformedEnvelope, name)
	case e.Sequence != nil && *e.Sequence < 1:
		return fmt.Errorf("%w: %s sequence %d", ErrMalformedEnvelope, name, *e.Sequence)
	}
	return nil
}
