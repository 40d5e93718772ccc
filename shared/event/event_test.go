package event_test

import (
	"context"
	"errors"
	"farmstay/infras/kafka"
	"farmstay/infras/kafka/mocks"
	"farmstay/shared/constant"
	"farmstay/shared/event"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type statusChange struct {
	BookingID string `json:"booking_id"`
	To        string `json:"to"`
}

func TestPublish(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")

	t.Run("sends envelope keyed by aggregate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		var sent kafka.Message

		client.EXPECT().
			SendMessages(gomock.Any(), "farmstay.booking", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				sent = messages[0]

				return nil
			})

		err := event.Publish(ctx, client, "farmstay.booking", "b-1", event.TypeBookingStatusChanged, statusChange{BookingID: "b-1", To: "confirmed"})
		require.NoError(t, err)

		envelope, ok := sent.Value.(event.Envelope[statusChange])
		require.True(t, ok)
		assert.Equal(t, "b-1", sent.Key)
		assert.Equal(t, event.TypeBookingStatusChanged, envelope.Type)
		assert.Equal(t, "owner-1", envelope.Actor)
		assert.Equal(t, "confirmed", envelope.Data.To)
		assert.NotEmpty(t, envelope.ID)
	})

	t.Run("broker error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		err := event.Publish(ctx, client, "farmstay.booking", "b-1", event.TypeBookingCreated, statusChange{})
		assert.Error(t, err)
	})

	t.Run("async skips disabled client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		client.EXPECT().Enabled().Return(false)

		event.PublishAsync(ctx, client, "farmstay.booking", "b-1", event.TypeBookingCreated, statusChange{})
	})
}
