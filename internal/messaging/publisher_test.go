package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/wardrobe-go/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	messages   []*message.Message
	topic      string
	publishErr error
	closeErr   error
}

func (m *mockPublisher) Publish(topic string, msgs ...*message.Message) error {
	if m.publishErr != nil {
		return m.publishErr
	}

	m.topic = topic
	m.messages = append(m.messages, msgs...)

	return nil
}

func (m *mockPublisher) Close() error {
	return m.closeErr
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("encodes the event onto the topic", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := messaging.NewPublishFunc[testEvent](mock, testTopic)

		require.NoError(t, publish(context.Background(), &testEvent{ID: "b1", Title: "hello"}))

		assert.Equal(t, testTopic, mock.topic)
		require.Len(t, mock.messages, 1)
		assert.JSONEq(t, `{"id":"b1","title":"hello"}`, string(mock.messages[0].Payload))
		assert.Equal(t, testTopic, mock.messages[0].Metadata.Get(messaging.MetadataTopic))
		assert.NotEmpty(t, mock.messages[0].UUID)
	})

	t.Run("wraps publish errors", func(t *testing.T) {
		errStream := errors.New("stream unavailable")
		publish := messaging.NewPublishFunc[testEvent](&mockPublisher{publishErr: errStream}, testTopic)

		err := publish(context.Background(), &testEvent{ID: "b1"})

		assert.ErrorIs(t, err, errStream)
	})
}

func TestNewLazyPublishFunc(t *testing.T) {
	t.Run("resolves on every call", func(t *testing.T) {
		mock := &mockPublisher{}
		calls := 0

		publish := messaging.NewLazyPublishFunc[testEvent](func() (message.Publisher, error) {
			calls++

			return mock, nil
		}, testTopic)

		require.NoError(t, publish(context.Background(), &testEvent{ID: "1"}))
		require.NoError(t, publish(context.Background(), &testEvent{ID: "2"}))

		assert.Equal(t, 2, calls)
		assert.Len(t, mock.messages, 2)
	})

	t.Run("returns resolve errors", func(t *testing.T) {
		errConfig := errors.New("missing url")
		publish := messaging.NewLazyPublishFunc[testEvent](func() (message.Publisher, error) {
			return nil, errConfig
		}, testTopic)

		assert.ErrorIs(t, publish(context.Background(), &testEvent{}), errConfig)
	})
}

func TestPublisherGroup(t *testing.T) {
	mock := &mockPublisher{}
	group := messaging.NewPublisherGroup(mock)

	assert.Equal(t, mock, group.Publisher())
	assert.NoError(t, group.Shutdown())

	failing := messaging.NewPublisherGroup(&mockPublisher{closeErr: errors.New("close error")})
	assert.Error(t, failing.Shutdown())
}
