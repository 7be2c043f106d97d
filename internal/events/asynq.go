package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/shared/metrics"
)

// enqueuer is the part of *asynq.Client the publisher uses
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Ping() error
	Close() error
}

// AsynqPublisher turns each record into a task whose type is the topic.
// Delivery is at least once; consumers see the same JSON body as with
// JetStream.
type AsynqPublisher struct {
	client enqueuer
	closed atomic.Bool
}

// NewAsynqPublisher fails when Redis does not answer a ping
func NewAsynqPublisher(redisAddr string) (*AsynqPublisher, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	if err := client.Ping(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect asynq broker %s: %w", redisAddr, err)
	}
	log.Info().Str("addr", redisAddr).Msg("✅ [EVENTS] Asynq broker connected")
	return newAsynqPublisher(client), nil
}

func newAsynqPublisher(e enqueuer) *AsynqPublisher {
	return &AsynqPublisher{client: e}
}

func (p *AsynqPublisher) Publish(ctx context.Context, topic string, record any) error {
	err := p.publish(ctx, topic, record)
	metrics.EventsPublishedTotal.WithLabelValues("asynq", topic, metrics.Result(err)).Inc()
	return err
}

func (p *AsynqPublisher) publish(ctx context.Context, topic string, record any) error {
	if p.closed.Load() {
		return fmt.Errorf("publisher closed")
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	task := asynq.NewTask(topic, payload)
	if _, err := p.client.EnqueueContext(ctx, task, asynq.Queue(QueueEvents), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue %s: %w", topic, err)
	}
	return nil
}

// Ready pings Redis, there is no long-lived connection state to inspect
func (p *AsynqPublisher) Ready() bool {
	return !p.closed.Load() && p.client.Ping() == nil
}

func (p *AsynqPublisher) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.client.Close()
}
