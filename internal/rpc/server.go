package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/shared/metrics"
)

// HandlerFunc answers one method. Returning an *Error sends that status,
// any other error is reported as INTERNAL.
type HandlerFunc func(ctx context.Context, payload []byte) (any, error)

// Handle adapts a typed function into a HandlerFunc
func Handle[Req any, Resp any](fn func(ctx context.Context, req *Req) (*Resp, error)) HandlerFunc {
	return func(ctx context.Context, payload []byte) (any, error) {
		var req Req
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, Errorf(CodeInvalidArgument, "malformed request")
			}
		}
		return fn(ctx, &req)
	}
}

// Server exposes the methods of one service. Replicas of the same service
// join one queue group so each request is answered once.
type Server struct {
	conn     *nats.Conn
	service  string
	opts     options
	handlers map[Method]HandlerFunc

	mu       sync.Mutex
	subs     []*nats.Subscription
	inflight sync.WaitGroup
}

func NewServer(conn *nats.Conn, service string, opts ...Option) *Server {
	return &Server{
		conn:     conn,
		service:  service,
		opts:     buildOptions(opts),
		handlers: make(map[Method]HandlerFunc),
	}
}

// Register must be called before Start
func (s *Server) Register(method Method, h HandlerFunc) {
	s.handlers[method] = h
}

func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.subs) > 0 {
		return fmt.Errorf("rpc server %s already started", s.service)
	}

	for method, h := range s.handlers {
		subject := Subject(s.opts.prefix, s.service, method)
		sub, err := s.conn.QueueSubscribe(subject, s.service, func(msg *nats.Msg) {
			s.inflight.Add(1)
			go func() {
				defer s.inflight.Done()
				s.serve(method, h, msg)
			}()
		})
		if err != nil {
			s.unsubscribeLocked()
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)

		log.Info().Str("subject", subject).Str("queue", s.service).Msg("[RPC] Serving")
	}

	// make sure the server has registered interest before callers arrive
	return s.conn.Flush()
}

// Stop unsubscribes and waits for in-flight handlers to reply
func (s *Server) Stop() {
	s.mu.Lock()
	s.unsubscribeLocked()
	s.mu.Unlock()

	s.inflight.Wait()
}

func (s *Server) unsubscribeLocked() {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			log.Warn().Err(err).Str("subject", sub.Subject).Msg("[RPC] Unsubscribe failed")
		}
	}
	s.subs = nil
}

func (s *Server) serve(method Method, h HandlerFunc, msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.timeout)
	defer cancel()

	result, err := h(ctx, msg.Data)

	var env envelope
	if err != nil {
		var rpcErr *Error
		if !errors.As(err, &rpcErr) {
			log.Error().Err(err).Str("service", s.service).Str("method", string(method)).Msg("[RPC] Handler failed")
			rpcErr = Errorf(CodeInternal, "internal error")
		}
		env.Status = rpcErr
	} else if result != nil {
		data, mErr := json.Marshal(result)
		if mErr != nil {
			env.Status = Errorf(CodeInternal, "encode result")
		} else {
			env.Result = data
		}
	}

	metrics.RPCServedTotal.
		WithLabelValues(s.service, string(method), string(CodeOf(statusErr(env.Status)))).
		Inc()

	reply, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("service", s.service).Msg("[RPC] Encode reply failed")
		return
	}
	if err := msg.Respond(reply); err != nil {
		log.Warn().Err(err).Str("service", s.service).Str("method", string(method)).Msg("[RPC] Respond failed")
	}
}

// statusErr avoids the typed-nil trap when converting *Error to error
func statusErr(e *Error) error {
	if e == nil {
		return nil
	}
	return e
}
