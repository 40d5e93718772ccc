package kafka_test

import (
	"context"
	"farmstay/config"
	"farmstay/infras/kafka"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "f-1", Value: bookingEvent{Type: "booking.created", BookingID: "b-1"}}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("f-1"), msg.Key)

	decoded, err := kafka.Decode[bookingEvent](msg)
	require.NoError(t, err)
	assert.Equal(t, "b-1", decoded.BookingID)

	_, err = (&kafka.Message{Value: make(chan int)}).ToKafkaMessage()
	assert.Error(t, err)
}

func TestNew_WithoutBrokers(t *testing.T) {
	client := kafka.New(&config.Config{})

	assert.False(t, client.Enabled())
	assert.NoError(t, client.SendMessages(context.Background(), "farmstay.booking", kafka.Message{Key: "k"}))
	assert.ErrorIs(t, client.Consume(context.Background(), "", "farmstay.booking", nil), kafka.ErrDisabled)
	assert.NoError(t, client.Close())
}
