// Package worker consumes the domain events published by the API.
package worker

import (
	"context"
	"farmstay/config"
	"farmstay/infras/kafka"
	"farmstay/infras/otel"
	bookingDto "farmstay/internal/domains/booking/model/dto"
	requestDto "farmstay/internal/domains/bookingrequest/model/dto"
	"farmstay/shared"
	"farmstay/shared/cache"
	"farmstay/shared/constant"
	"farmstay/shared/event"
	"fmt"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

const otelScopeName = "worker"

type Worker struct {
	config *config.Config
	kafka  kafka.Client
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, cache cache.RedisCache, otel otel.Otel) *Worker {
	return &Worker{
		config: cfg,
		kafka:  kafka,
		cache:  cache,
		otel:   otel,
	}
}

// Run consumes every topic until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if !w.kafka.Enabled() {
		return kafka.ErrDisabled
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return w.kafka.Consume(ctx, "", w.config.Kafka.Topics.Booking, w.HandleBooking) //nolint:wrapcheck
	})
	group.Go(func() error {
		return w.kafka.Consume(ctx, "", w.config.Kafka.Topics.BookingRequest, w.HandleBookingRequest) //nolint:wrapcheck
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("failed to consume events: %w", err)
	}

	return nil
}

// HandleBooking drops the dashboards the booking counts towards and notifies the owner.
func (w *Worker) HandleBooking(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, otelScopeName, otelScopeName+".HandleBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	envelope, err := kafka.Decode[event.Envelope[bookingDto.Event]](msg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	scope.SetAttributes(map[string]any{
		"event.id":   envelope.ID,
		"event.type": envelope.Type,
	})

	keys := []string{constant.CacheKeyDashboardAdmin}
	if envelope.Data.OwnerID != "" {
		keys = append(keys, shared.BuildCacheKey(constant.CacheKeyDashboardOwner, envelope.Data.OwnerID))
	}

	if err = w.drop(ctx, keys...); err != nil {
		return err
	}

	log.Info().
		Str("type", envelope.Type).
		Str("booking_id", envelope.Data.ID).
		Str("owner_id", envelope.Data.OwnerID).
		Str("status", envelope.Data.Status).
		Str("previous_status", envelope.Data.PreviousStatus).
		Msg("notify owner about booking")

	return nil
}

// HandleBookingRequest drops the admin dashboard and notifies the admins about the enquiry.
func (w *Worker) HandleBookingRequest(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, otelScopeName, otelScopeName+".HandleBookingRequest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	envelope, err := kafka.Decode[event.Envelope[requestDto.Event]](msg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	scope.SetAttribute("event.id", envelope.ID)

	if err = w.drop(ctx, constant.CacheKeyDashboardAdmin); err != nil {
		return err
	}

	log.Info().
		Str("type", envelope.Type).
		Str("request_id", envelope.Data.ID).
		Str("email", envelope.Data.Email).
		Str("check_in", envelope.Data.CheckIn).
		Msg("notify admin about booking request")

	return nil
}

func (w *Worker) drop(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := w.cache.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to drop dashboard cache")

			return fmt.Errorf("failed to drop dashboard cache: %w", err)
		}
	}

	return nil
}
