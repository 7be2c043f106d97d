package events

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks   []*asynq.Task
	err     error
	pingErr error
	closed  bool
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueEvents, Type: task.Type()}, nil
}

func (f *fakeEnqueuer) Ping() error {
	return f.pingErr
}

func (f *fakeEnqueuer) Close() error {
	f.closed = true
	return nil
}

func TestAsynqPublisher(t *testing.T) {
	fake := &fakeEnqueuer{}
	pub := newAsynqPublisher(fake)

	assert.True(t, pub.Ready())
	require.NoError(t, pub.Publish(context.Background(), TopicBooks, record{ID: "1", Title: "Dune"}))
	require.Len(t, fake.tasks, 1)
	assert.Equal(t, TopicBooks, fake.tasks[0].Type())
	assert.JSONEq(t, `{"id":"1","title":"Dune"}`, string(fake.tasks[0].Payload()))

	require.NoError(t, pub.Close())
	assert.True(t, fake.closed)
	assert.False(t, pub.Ready())
	assert.Error(t, pub.Publish(context.Background(), TopicBooks, record{ID: "2"}))
}

func TestAsynqPublisherEnqueueError(t *testing.T) {
	pub := newAsynqPublisher(&fakeEnqueuer{err: errors.New("redis down")})

	err := pub.Publish(context.Background(), TopicAuthors, record{ID: "1"})
	assert.ErrorContains(t, err, "redis down")
}

func TestAsynqPublisherNotReadyWhenRedisDown(t *testing.T) {
	fake := &fakeEnqueuer{}
	pub := newAsynqPublisher(fake)
	require.True(t, pub.Ready())

	fake.pingErr = errors.New("dial tcp: connection refused")
	assert.False(t, pub.Ready())
}

func TestNewAsynqPublisherUnreachable(t *testing.T) {
	pub, err := NewAsynqPublisher("127.0.0.1:1")
	require.Error(t, err)
	assert.Nil(t, pub)
	assert.ErrorContains(t, err, "127.0.0.1:1")
}

func TestNewAsynqPublisherMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)

	pub, err := NewAsynqPublisher(mr.Addr())
	require.NoError(t, err)
	assert.True(t, pub.Ready())

	require.NoError(t, pub.Close())
	assert.False(t, pub.Ready())
}

func TestTaskHandler(t *testing.T) {
	got := &collector{}
	h := TaskHandler(got.handle)

	require.NoError(t, h(context.Background(), asynq.NewTask(TopicBooks, []byte(`{"id":"1"}`))))
	assert.Equal(t, 1, got.count())
}

func TestTaskHandlerSkipsMalformed(t *testing.T) {
	h := TaskHandler(LogRecord)

	err := h(context.Background(), asynq.NewTask(TopicBooks, []byte(`not json`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestLogRecord(t *testing.T) {
	assert.NoError(t, LogRecord(context.Background(), TopicBooks, []byte(`{"id":"1","title":"Dune"}`)))
	assert.ErrorIs(t, LogRecord(context.Background(), TopicBooks, []byte(`[1,2`)), ErrMalformedRecord)
}
