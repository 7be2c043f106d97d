package messaging

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// NATSConfig holds connection settings shared by RPC and event connections
type NATSConfig struct {
	URL            string
	Name           string // shows up in the server's connz
	ConnectTimeout time.Duration
	ReconnectWait  time.Duration
	MaxReconnects  int // -1 reconnects forever
}

func DefaultNATSConfig(url, name string) *NATSConfig {
	return &NATSConfig{
		URL:            url,
		Name:           name,
		ConnectTimeout: 5 * time.Second,
		ReconnectWait:  2 * time.Second,
		MaxReconnects:  -1,
	}
}

// ConnectNATS opens one long-lived connection. Callers share it across
// goroutines; nats.Conn is safe for concurrent use.
func ConnectNATS(cfg *NATSConfig) (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.Timeout(cfg.ConnectTimeout),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Str("conn", cfg.Name).Msg("[NATS] Disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("conn", cfg.Name).Str("url", c.ConnectedUrl()).Msg("[NATS] Reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Debug().Str("conn", cfg.Name).Msg("[NATS] Connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", cfg.URL, err)
	}

	log.Info().
		Str("conn", cfg.Name).
		Str("url", nc.ConnectedUrl()).
		Msg("✅ [NATS] Connected")

	return nc, nil
}
