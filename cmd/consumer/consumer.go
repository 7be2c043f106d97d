package main

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"catalog-gateway/internal/config"
	"catalog-gateway/internal/events"
	"catalog-gateway/internal/infrastructure/messaging"
)

// runner is an events.Consumer plus the connection it owns
type runner struct {
	events.Consumer
	conn *nats.Conn
}

// Ready is false once the bus connection is lost. The asynq server keeps
// its own Redis pool and has no connection to report.
func (r *runner) Ready() bool {
	return r.conn == nil || r.conn.IsConnected()
}

func (r *runner) Close() {
	if r.conn != nil {
		r.conn.Close()
	}
}

func newConsumer(cfg config.EventsConfig) (*runner, error) {
	switch cfg.Driver {
	case config.EventsDriverNATS:
		conn, err := messaging.ConnectNATS(messaging.DefaultNATSConfig(cfg.NATSURL, "consumer-"+cfg.Group))
		if err != nil {
			return nil, err
		}
		js, err := jetstream.New(conn)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("create jetstream context: %w", err)
		}
		return &runner{Consumer: events.NewJetStreamConsumer(js, cfg.Stream, cfg.Group), conn: conn}, nil

	case config.EventsDriverAsynq:
		return &runner{Consumer: events.NewAsynqConsumer(cfg.RedisAddr, cfg.Concurrency)}, nil

	default:
		return nil, fmt.Errorf("unsupported events driver %q", cfg.Driver)
	}
}
