// Package events carries catalog records from the gateway to downstream
// consumers. A record is published once its write is confirmed; there is
// no rollback when publishing fails.
package events

import "context"

const (
	TopicBooks   = "books_topic"
	TopicAuthors = "authors_topic"

	// QueueEvents is the asynq queue events are enqueued on
	QueueEvents = "events"
)

// Topics lists every topic a consumer subscribes to
var Topics = []string{TopicBooks, TopicAuthors}

// Publisher sends a record, JSON encoded, to a topic
type Publisher interface {
	Publish(ctx context.Context, topic string, record any) error
	// Ready reports whether the underlying connection is usable
	Ready() bool
	Close() error
}
