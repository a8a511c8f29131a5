package kafka

import (
	"context"
	stderrors "errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

type fakeWriter struct {
	messages []kafkago.Message
	writeErr error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(ProducerConfig{}, logging.NewNopLogger())
	assert.True(t, errors.IsValidation(err))
}

func TestProducerPublish(t *testing.T) {
	w := &fakeWriter{}
	p := newProducerWithWriter(w, logging.NewNopLogger())

	envelope, err := NewEventEnvelope("entity.assessed", "apiserver", EntityAssessedPayload{
		EntityID:   "ent-1",
		TotalScore: 13,
	})
	require.NoError(t, err)

	err = p.Publish(context.Background(), TopicEntityAssessed, "ent-1", envelope)
	require.NoError(t, err)

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, TopicEntityAssessed, msg.Topic)
	assert.Equal(t, "ent-1", string(msg.Key))
	assert.Contains(t, string(msg.Value), `"event_type":"entity.assessed"`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "entity.assessed", string(msg.Headers[0].Value))
}

func TestProducerPublish_WriteFailure(t *testing.T) {
	w := &fakeWriter{writeErr: stderrors.New("broker unreachable")}
	p := newProducerWithWriter(w, logging.NewNopLogger())

	envelope, _ := NewEventEnvelope("entity.assessed", "apiserver", struct{}{})
	err := p.Publish(context.Background(), TopicEntityAssessed, "k", envelope)

	assert.True(t, errors.IsCode(err, errors.CodeMessageQueueError))
}

func TestProducerClose_IdempotentAndRejectsPublish(t *testing.T) {
	w := &fakeWriter{}
	p := newProducerWithWriter(w, logging.NewNopLogger())

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, w.closed)

	envelope, _ := NewEventEnvelope("entity.assessed", "apiserver", struct{}{})
	err := p.Publish(context.Background(), TopicEntityAssessed, "k", envelope)
	assert.ErrorIs(t, err, ErrProducerClosed)
}
