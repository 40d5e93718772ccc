// Package event defines the domain events published to Kafka.
package event

import (
	"context"
	"farmstay/infras/kafka"
	"farmstay/shared"
	"farmstay/shared/timezone"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	TypeBookingCreated        = "booking.created"
	TypeBookingStatusChanged  = "booking.status_changed"
	TypeBookingRequestCreated = "booking_request.created"
)

type Envelope[T any] struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       T         `json:"data"`
}

func New[T any](ctx context.Context, eventType string, data T) Envelope[T] {
	return Envelope[T]{
		ID:         uuid.NewString(),
		Type:       eventType,
		Actor:      shared.Actor(ctx),
		OccurredAt: timezone.Now(),
		Data:       data,
	}
}

// Publish sends one event keyed by key so events of the same aggregate stay ordered.
func Publish[T any](ctx context.Context, client kafka.Client, topic, key, eventType string, data T) error {
	envelope := New(ctx, eventType, data)

	if err := client.SendMessages(ctx, topic, kafka.Message{Key: key, Value: envelope}); err != nil {
		log.Error().Err(err).Str("type", eventType).Str("key", key).Msg("failed to publish event")

		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	return nil
}

// PublishAsync detaches from the request so a slow broker never delays the response.
func PublishAsync[T any](ctx context.Context, client kafka.Client, topic, key, eventType string, data T) {
	if !client.Enabled() {
		return
	}

	go func() {
		_ = Publish(context.WithoutCancel(ctx), client, topic, key, eventType, data)
	}()
}
