package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/middleware"
)

var errEmptySubmission = errors.New("no lines to publish")

// SequenceSource numbers events per partition.
type SequenceSource interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

// Publisher emits CartSubmitted events partitioned by restaurant.
type Publisher struct {
	ch       Channel
	seq      SequenceSource
	producer string
	logger   *slog.Logger
	now      func() time.Time
}

func NewPublisher(ch Channel, seq SequenceSource, producer string, logger *slog.Logger) (*Publisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare %s: %w", EventsExchange, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		ch:       ch,
		seq:      seq,
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishCartSubmitted(ctx context.Context, s cart.Snapshot) error {
	if len(s) == 0 {
		return errEmptySubmission
	}
	restaurantID := s[0].RestaurantID

	seq, err := p.seq.NextSequence(ctx, strconv.FormatInt(restaurantID, 10))
	if err != nil {
		return fmt.Errorf("reserve sequence: %w", err)
	}

	env := newCartSubmittedEvent(s, restaurantID, seq, p.producer, EnvelopeMetadata{
		CorrelationID: middleware.GetCorrelationID(ctx),
	}, p.now())

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal CartSubmitted envelope: %w", err)
	}
	if err := p.publishJSON(ctx, CartSubmittedRoutingKey, body); err != nil {
		return fmt.Errorf("publish %s: %w", CartSubmittedRoutingKey, err)
	}

	p.logger.Debug("event published",
		"event", CartSubmittedEventName,
		"event_id", env.EventID,
		"partition_key", env.PartitionKey,
		"sequence", *env.Sequence,
	)
	return nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
