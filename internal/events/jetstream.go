package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/infrastructure/messaging"
	"catalog-gateway/internal/shared/metrics"
)

// EnsureStream creates or updates the stream that captures every topic
func EnsureStream(ctx context.Context, js jetstream.JetStream, name string) (jetstream.Stream, error) {
	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: Topics,
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("ensure stream %s: %w", name, err)
	}
	return stream, nil
}

// JetStreamPublisher publishes with a JetStream ack, so a nil error means
// the record is stored in the stream
type JetStreamPublisher struct {
	conn   *nats.Conn
	owned  bool
	js     jetstream.JetStream
	stream string
}

// ConnectJetStream opens the publisher connection once at startup
func ConnectJetStream(ctx context.Context, url, stream string) (*JetStreamPublisher, error) {
	nc, err := messaging.ConnectNATS(messaging.DefaultNATSConfig(url, "gateway-events"))
	if err != nil {
		return nil, err
	}
	p, err := NewJetStreamPublisher(ctx, nc, stream)
	if err != nil {
		nc.Close()
		return nil, err
	}
	p.owned = true
	return p, nil
}

// NewJetStreamPublisher uses an existing connection, Close leaves it open
func NewJetStreamPublisher(ctx context.Context, conn *nats.Conn, stream string) (*JetStreamPublisher, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}
	if _, err := EnsureStream(ctx, js, stream); err != nil {
		return nil, err
	}

	log.Info().Str("stream", stream).Strs("topics", Topics).Msg("✅ [EVENTS] JetStream publisher ready")

	return &JetStreamPublisher{conn: conn, js: js, stream: stream}, nil
}

func (p *JetStreamPublisher) Publish(ctx context.Context, topic string, record any) error {
	err := p.publish(ctx, topic, record)
	metrics.EventsPublishedTotal.WithLabelValues("nats", topic, metrics.Result(err)).Inc()
	return err
}

func (p *JetStreamPublisher) publish(ctx context.Context, topic string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := p.js.Publish(ctx, topic, data); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (p *JetStreamPublisher) Ready() bool {
	return p.conn.IsConnected()
}

func (p *JetStreamPublisher) Close() error {
	if !p.owned {
		return nil
	}
	return p.conn.Drain()
}
