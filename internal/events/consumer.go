package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/shared/metrics"
)

// Handler processes one received record
type Handler func(ctx context.Context, topic string, record json.RawMessage) error

// ErrMalformedRecord is returned for bodies that are not a JSON object.
// Such messages are dropped rather than redelivered.
var ErrMalformedRecord = errors.New("malformed record")

// LogRecord is the consumer's only processing step
func LogRecord(_ context.Context, topic string, record json.RawMessage) error {
	var fields map[string]any
	if err := json.Unmarshal(record, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	log.Info().
		Str("topic", topic).
		Interface("id", fields["id"]).
		RawJSON("record", record).
		Msg("📥 Event received")
	return nil
}

// Consumer delivers records from the bus to a Handler until stopped
type Consumer interface {
	Start(ctx context.Context, handler Handler) error
	Stop()
}

// JetStreamConsumer reads with a durable consumer starting at the first
// message in the stream, so a restarted consumer resumes where it left off
type JetStreamConsumer struct {
	js      jetstream.JetStream
	stream  string
	durable string

	mu sync.Mutex
	cc jetstream.ConsumeContext
}

func NewJetStreamConsumer(js jetstream.JetStream, stream, durable string) *JetStreamConsumer {
	return &JetStreamConsumer{js: js, stream: stream, durable: durable}
}

func (c *JetStreamConsumer) Start(ctx context.Context, handler Handler) error {
	if _, err := EnsureStream(ctx, c.js, c.stream); err != nil {
		return err
	}

	cons, err := c.js.CreateOrUpdateConsumer(ctx, c.stream, jetstream.ConsumerConfig{
		Durable:        c.durable,
		DeliverPolicy:  jetstream.DeliverAllPolicy,
		AckPolicy:      jetstream.AckExplicitPolicy,
		FilterSubjects: Topics,
	})
	if err != nil {
		return fmt.Errorf("create consumer %s: %w", c.durable, err)
	}

	cc, err := cons.Consume(func(msg jetstream.Msg) {
		err := handler(ctx, msg.Subject(), msg.Data())
		metrics.EventsConsumedTotal.WithLabelValues(msg.Subject(), metrics.Result(err)).Inc()
		_ = settle(msg, err)
	})
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.stream, err)
	}

	c.mu.Lock()
	c.cc = cc
	c.mu.Unlock()

	log.Info().Str("stream", c.stream).Str("group", c.durable).Msg("✅ [EVENTS] Consumer started")
	return nil
}

// settle acknowledges a handled message, terminates a malformed one and
// asks for redelivery of anything else. A failed acknowledgement is logged
// and returned; the server redelivers after AckWait either way.
func settle(msg jetstream.Msg, handlerErr error) error {
	var action string
	var err error

	switch {
	case handlerErr == nil:
		action, err = "ack", msg.Ack()
	case errors.Is(handlerErr, ErrMalformedRecord):
		log.Warn().Err(handlerErr).Str("topic", msg.Subject()).Msg("Dropping malformed event")
		action, err = "term", msg.Term()
	default:
		log.Error().Err(handlerErr).Str("topic", msg.Subject()).Msg("Event handler failed, will be redelivered")
		action, err = "nak", msg.Nak()
	}

	if err != nil {
		log.Warn().Err(err).Str("topic", msg.Subject()).Str("action", action).Msg("[EVENTS] Acknowledgement failed")
	}
	return err
}

func (c *JetStreamConsumer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cc != nil {
		c.cc.Stop()
		c.cc = nil
	}
}

// AsynqConsumer runs an asynq server on the events queue
type AsynqConsumer struct {
	srv *asynq.Server
}

func NewAsynqConsumer(redisAddr string, concurrency int) *AsynqConsumer {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Queues:      map[string]int{QueueEvents: 1},
			Concurrency: concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("topic", task.Type()).Msg("[Asynq] ❌ Event task failed")
			}),
		},
	)
	return &AsynqConsumer{srv: srv}
}

func (c *AsynqConsumer) Start(_ context.Context, handler Handler) error {
	mux := asynq.NewServeMux()
	for _, topic := range Topics {
		mux.HandleFunc(topic, TaskHandler(handler))
	}
	if err := c.srv.Start(mux); err != nil {
		return fmt.Errorf("start asynq consumer: %w", err)
	}
	log.Info().Str("queue", QueueEvents).Msg("✅ [EVENTS] Asynq consumer started")
	return nil
}

func (c *AsynqConsumer) Stop() {
	c.srv.Shutdown()
}

// TaskHandler adapts a Handler to asynq. Malformed records are skipped
// instead of retried.
func TaskHandler(handler Handler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		err := handler(ctx, task.Type(), task.Payload())
		metrics.EventsConsumedTotal.WithLabelValues(task.Type(), metrics.Result(err)).Inc()
		if errors.Is(err, ErrMalformedRecord) {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return err
	}
}
