package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kgo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kgo.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kgo.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	_, err := NewKafkaPublisher([]string{" ", ""}, "conduit.events")
	assert.Error(t, err)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	event := New(ArticleCreated, "how-to-train-your-dragon", map[string]any{"author_id": 1})
	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "how-to-train-your-dragon", string(msg.Key))
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, ArticleCreated, string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ArticleCreated, decoded.Type)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	cause := errors.New("broker down")
	p := &KafkaPublisher{writer: &fakeWriter{err: cause}}

	err := p.Publish(context.Background(), New(UserFollowed, "1", nil))
	assert.ErrorIs(t, err, cause)

	// Emit 吞掉错误
	assert.NotPanics(t, func() {
		Emit(context.Background(), p, New(UserFollowed, "1", nil))
		Emit(context.Background(), nil, New(UserFollowed, "1", nil))
	})
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), New(ArticleDeleted, "x", nil)))
	assert.NoError(t, p.Close())
}
