package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/infrastructure/messaging"
	"catalog-gateway/internal/shared/metrics"
)

// Client calls one backend service. It is safe for concurrent use; all
// calls share the underlying connection.
type Client struct {
	conn    *nats.Conn
	owned   bool
	service string
	opts    options
}

// Dial opens a dedicated connection for service
func Dial(url, service string, opts ...Option) (*Client, error) {
	nc, err := messaging.ConnectNATS(messaging.DefaultNATSConfig(url, "gateway-"+service))
	if err != nil {
		return nil, err
	}
	c := NewClient(nc, service, opts...)
	c.owned = true
	return c, nil
}

// NewClient wraps an existing connection, Close leaves it open
func NewClient(conn *nats.Conn, service string, opts ...Option) *Client {
	return &Client{
		conn:    conn,
		service: service,
		opts:    buildOptions(opts),
	}
}

func (c *Client) Service() string {
	return c.service
}

// Ready reports whether the connection is currently usable
func (c *Client) Ready() bool {
	return c.conn != nil && c.conn.IsConnected()
}

func (c *Client) Close() {
	if c.owned && c.conn != nil {
		c.conn.Close()
	}
}

// Call sends req to method and decodes the result into resp. A failure is
// always an *Error. Calls are never retried.
func (c *Client) Call(ctx context.Context, method Method, req, resp any) error {
	start := time.Now()
	err := c.call(ctx, method, req, resp)

	code := CodeOf(err)
	metrics.RPCCallDuration.
		WithLabelValues(c.service, string(method), string(code)).
		Observe(time.Since(start).Seconds())

	if err != nil {
		log.Debug().
			Err(err).
			Str("service", c.service).
			Str("method", string(method)).
			Dur("elapsed", time.Since(start)).
			Msg("[RPC] Call failed")
	}
	return err
}

func (c *Client) call(ctx context.Context, method Method, req, resp any) error {
	data, err := json.Marshal(req)
	if err != nil {
		return Errorf(CodeInternal, "encode request: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.timeout)
	defer cancel()

	msg, err := c.conn.RequestWithContext(ctx, Subject(c.opts.prefix, c.service, method), data)
	if err != nil {
		return transportError(c.service, err)
	}

	var env envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		return Errorf(CodeInternal, "decode reply: %v", err)
	}
	if env.Status != nil && env.Status.Code != CodeOK {
		return env.Status
	}
	if resp != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, resp); err != nil {
			return Errorf(CodeInternal, "decode result: %v", err)
		}
	}
	return nil
}

func transportError(service string, err error) *Error {
	switch {
	case errors.Is(err, nats.ErrNoResponders):
		return Errorf(CodeUnavailable, "no responders for %s", service)
	case errors.Is(err, nats.ErrConnectionClosed), errors.Is(err, nats.ErrDisconnected):
		return Errorf(CodeUnavailable, "connection to %s closed", service)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, nats.ErrTimeout):
		return Errorf(CodeDeadlineExceeded, "%s did not answer in time", service)
	case errors.Is(err, context.Canceled):
		return Errorf(CodeUnavailable, "call to %s cancelled", service)
	default:
		return Errorf(CodeUnavailable, "%s: %v", service, err)
	}
}
