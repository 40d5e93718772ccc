package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"farmstay/config"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	writeBatchTimeout = 50 * time.Millisecond

	defaultHandlerTries = 5
	retryInitial        = 500 * time.Millisecond
	retryMax            = 30 * time.Second
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Decode unmarshals the value of msg into T.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		log.Error().Err(err).Str("key", string(msg.Key)).Msg("Failed to unmarshal Kafka message value from JSON")

		return value, fmt.Errorf("%w: failed to unmarshal Kafka message value from JSON: %w", ErrSkip, err)
	}

	return value, nil
}

// Handler processes one message. Returning an error wrapping ErrSkip commits the
// message anyway; any other error is retried.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	// Consume blocks until ctx is cancelled. A message is committed once handler
	// succeeds or skips it. When handler keeps failing, Consume returns without
	// committing so the message is redelivered to the next consumer.
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler) (err error)
	Enabled() bool
	Close() error
}

var (
	ErrDisabled = errors.New("kafka is not configured")
	ErrSkip     = errors.New("kafka message cannot be processed")
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkaGo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

type retryPolicy struct {
	tries   uint
	initial time.Duration
	max     time.Duration
}

func (p retryPolicy) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initial
	b.MaxInterval = p.max

	return b
}

type kafkaClientImpl struct {
	config    *config.Config
	dialer    *kafkaGo.Dialer
	transport *kafkaGo.Transport
	writers   sync.Map
	retry     retryPolicy
}

// New returns a client that drops every message when no broker is configured.
func New(cfg *config.Config) Client {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn().Msg("No Kafka brokers configured, domain events are disabled")

		return &noopClient{}
	}

	dialer := &kafkaGo.Dialer{DualStack: true}
	transport := &kafkaGo.Transport{}

	if cfg.Kafka.SASL.Username != "" {
		mechanism := plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}

		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	tries := cfg.Kafka.HandlerTries
	if tries == 0 {
		tries = defaultHandlerTries
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config:    cfg,
		dialer:    dialer,
		transport: transport,
		retry:     retryPolicy{tries: tries, initial: retryInitial, max: retryMax},
	}
}

func (k *kafkaClientImpl) Enabled() bool {
	return true
}

func (k *kafkaClientImpl) writer(topic string) *kafkaGo.Writer {
	if writer, ok := k.writers.Load(topic); ok {
		return writer.(*kafkaGo.Writer) //nolint:forcetypeassert
	}

	writer, _ := k.writers.LoadOrStore(topic, &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(k.config.Kafka.Brokers...),
		Topic:                  topic,
		Transport:              k.transport,
		Balancer:               &kafkaGo.Hash{},
		BatchTimeout:           writeBatchTimeout,
		AllowAutoTopicCreation: true,
	})

	return writer.(*kafkaGo.Writer) //nolint:forcetypeassert
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msgs = append(msgs, msg)
	}

	if err = k.writer(topic).WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) (err error) {
	if topic == "" {
		return errors.New("topic name cannot be empty")
	}

	groupID := k.config.Kafka.ConsumerGroup
	if consumerGroup != "" {
		groupID = consumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close Kafka reader.")
		}
	}()

	return consume(ctx, reader, topic, handler, k.retry)
}

func consume(ctx context.Context, r messageReader, topic string, handler Handler, policy retryPolicy) error {
	fetchBackOff := policy.backOff()

	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Consumer context done.")

				return nil
			}

			wait := fetchBackOff.NextBackOff()
			log.Error().Err(err).Str("topic", topic).Dur("retry_in", wait).Msg("Failed to read message from Kafka.")

			if !sleep(ctx, wait) {
				return nil
			}

			continue
		}

		fetchBackOff.Reset()

		if err = handle(ctx, msg, handler, policy); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Giving up on Kafka message, leaving it uncommitted.")

			return fmt.Errorf("failed to handle message at offset %d of %s: %w", msg.Offset, topic, err)
		}

		if err = r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit Kafka message.")
		}
	}
}

func handle(ctx context.Context, msg kafkaGo.Message, handler Handler, policy retryPolicy) error {
	attempt := 0

	operation := func() (struct{}, error) {
		attempt++

		err := handler(ctx, msg)
		switch {
		case err == nil:
		case errors.Is(err, ErrSkip):
			log.Warn().Err(err).Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("Skipping Kafka message.")

			err = nil
		default:
			log.Warn().Err(err).Str("key", string(msg.Key)).Int("attempt", attempt).Msg("Failed to handle Kafka message.")
		}

		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy.backOff()),
		backoff.WithMaxTries(policy.tries),
	)

	return err //nolint:wrapcheck
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (k *kafkaClientImpl) Close() error {
	var errs []error

	k.writers.Range(func(_, value any) bool {
		if err := value.(*kafkaGo.Writer).Close(); err != nil { //nolint:forcetypeassert
			errs = append(errs, err)
		}

		return true
	})

	return errors.Join(errs...)
}

type noopClient struct{}

func (n *noopClient) SendMessages(_ context.Context, topic string, messages ...Message) error {
	log.Debug().Str("topic", topic).Int("count", len(messages)).Msg("Kafka disabled, dropping messages")

	return nil
}

func (n *noopClient) Consume(context.Context, string, string, Handler) error {
	return ErrDisabled
}

func (n *noopClient) Enabled() bool {
	return false
}

func (n *noopClient) Close() error {
	return nil
}
