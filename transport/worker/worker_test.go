package worker_test

import (
	"context"
	"errors"
	"farmstay/config"
	"farmstay/infras/kafka"
	kafkaMocks "farmstay/infras/kafka/mocks"
	otelMocks "farmstay/infras/otel/mocks"
	bookingDto "farmstay/internal/domains/booking/model/dto"
	requestDto "farmstay/internal/domains/bookingrequest/model/dto"
	cacheMocks "farmstay/shared/cache/mocks"
	"farmstay/shared/event"
	"farmstay/transport/worker"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	worker *worker.Worker
	kafka  *kafkaMocks.MockClient
	cache  *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.Kafka.Topics.Booking = "farmstay.booking"
	cfg.Kafka.Topics.BookingRequest = "farmstay.booking_request"

	f := fixture{
		kafka: kafkaMocks.NewMockClient(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}
	f.worker = worker.New(cfg, f.kafka, f.cache, otelMocks.NewOtel())

	return f
}

func message(t *testing.T, value any) kafkaGo.Message {
	t.Helper()

	msg := kafka.Message{Key: "k", Value: value}
	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	return out
}

func TestHandleBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("drops owner and admin dashboards", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Delete(gomock.Any(), "dashboard:admin").Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "dashboard:owner:o-1").Return(nil)

		envelope := event.New(ctx, event.TypeBookingCreated, bookingDto.Event{ID: "b-1", OwnerID: "o-1", Status: "pending"})
		require.NoError(t, f.worker.HandleBooking(ctx, message(t, envelope)))
	})

	t.Run("event without owner", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Delete(gomock.Any(), "dashboard:admin").Return(nil)

		envelope := event.New(ctx, event.TypeBookingStatusChanged, bookingDto.Event{ID: "b-1", Status: "confirmed"})
		require.NoError(t, f.worker.HandleBooking(ctx, message(t, envelope)))
	})

	t.Run("malformed payload", func(t *testing.T) {
		f := newFixture(t)

		err := f.worker.HandleBooking(ctx, kafkaGo.Message{Value: []byte("{")})
		assert.ErrorIs(t, err, kafka.ErrSkip)
	})

	t.Run("cache down", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Delete(gomock.Any(), "dashboard:admin").Return(errors.New("redis down"))

		envelope := event.New(ctx, event.TypeBookingCreated, bookingDto.Event{ID: "b-1", OwnerID: "o-1"})
		err := f.worker.HandleBooking(ctx, message(t, envelope))
		require.Error(t, err)
		assert.NotErrorIs(t, err, kafka.ErrSkip)
	})
}

func TestHandleBookingRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.cache.EXPECT().Delete(gomock.Any(), "dashboard:admin").Return(nil)

	envelope := event.New(ctx, event.TypeBookingRequestCreated, requestDto.Event{ID: "r-1", Email: "guest@farmstay.test"})
	require.NoError(t, f.worker.HandleBookingRequest(ctx, message(t, envelope)))
}

func TestRun(t *testing.T) {
	t.Run("kafka disabled", func(t *testing.T) {
		f := newFixture(t)

		f.kafka.EXPECT().Enabled().Return(false)

		assert.ErrorIs(t, f.worker.Run(context.Background()), kafka.ErrDisabled)
	})

	t.Run("consumes both topics", func(t *testing.T) {
		f := newFixture(t)

		f.kafka.EXPECT().Enabled().Return(true)
		f.kafka.EXPECT().Consume(gomock.Any(), "", "farmstay.booking", gomock.Any()).Return(nil)
		f.kafka.EXPECT().Consume(gomock.Any(), "", "farmstay.booking_request", gomock.Any()).Return(nil)

		assert.NoError(t, f.worker.Run(context.Background()))
	})
}
