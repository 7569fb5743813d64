package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written  []kafka.Message
	deadline bool
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "blog-events", time.Second, discardLogger())

	event := New(LikeGiven, 42, 7, map[string]int64{"post_id": 42, "user_id": 7})
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, w.written, 1)
	msg := w.written[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.True(t, w.deadline)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, LikeGiven, string(msg.Headers[0].Value))

	var got Event
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, LikeGiven, got.Type)
	assert.EqualValues(t, 42, got.PostID)
	assert.EqualValues(t, 7, got.ActorID)
}

func TestProducer_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(w, "blog-events", 0, discardLogger())

	err := p.Publish(context.Background(), New(PostCreated, 1, 1, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post.created")
	assert.ErrorIs(t, err, w.err)
	assert.False(t, w.deadline)
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "blog-events", time.Second, discardLogger())

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNew_StampsEvent(t *testing.T) {
	a := New(PostDeleted, 3, 9, nil)
	b := New(PostDeleted, 3, 9, nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), New(PostCreated, 1, 1, nil)))
	assert.NoError(t, p.Close())
}
