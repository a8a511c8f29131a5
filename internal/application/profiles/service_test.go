package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/messaging/kafka"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

type mockInner struct {
	mock.Mock
}

func (m *mockInner) Create(ctx context.Context, p *profile.RiskProfile) (*profile.RiskProfile, error) {
	args := m.Called(ctx, p)
	if v := args.Get(0); v != nil {
		return v.(*profile.RiskProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInner) Update(ctx context.Context, p *profile.RiskProfile) (*profile.RiskProfile, error) {
	args := m.Called(ctx, p)
	if v := args.Get(0); v != nil {
		return v.(*profile.RiskProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInner) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInner) Get(ctx context.Context, id string) (*profile.RiskProfile, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*profile.RiskProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInner) List(ctx context.Context) ([]*profile.RiskProfile, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*profile.RiskProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInner) SetDefault(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInner) ActiveProfile(ctx context.Context) (*profile.RiskProfile, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*profile.RiskProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

type capturingPublisher struct {
	topics    []string
	keys      []string
	envelopes []*kafka.EventEnvelope
	err       error
}

func (p *capturingPublisher) Publish(_ context.Context, topic, key string, envelope *kafka.EventEnvelope) error {
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	p.envelopes = append(p.envelopes, envelope)
	return p.err
}

func TestPublishingService_CreateEmitsEvent(t *testing.T) {
	inner := new(mockInner)
	inner.On("Create", mock.Anything, mock.Anything).
		Return(&profile.RiskProfile{ID: "p1", Name: "strict", IsDefault: true}, nil)
	pub := &capturingPublisher{}
	svc := NewPublishingService(inner, pub, "test", nil)

	_, err := svc.Create(context.Background(), &profile.RiskProfile{Name: "strict"})
	require.NoError(t, err)

	require.Len(t, pub.envelopes, 1)
	assert.Equal(t, kafka.TopicProfileUpdated, pub.topics[0])
	assert.Equal(t, "p1", pub.keys[0])

	var payload kafka.ProfileUpdatedPayload
	require.NoError(t, pub.envelopes[0].DecodePayload(&payload))
	assert.Equal(t, "p1", payload.ProfileID)
	assert.Equal(t, "created", payload.Action)
	assert.True(t, payload.IsDefault)
}

func TestPublishingService_FailedMutationEmitsNothing(t *testing.T) {
	inner := new(mockInner)
	inner.On("Update", mock.Anything, mock.Anything).
		Return(nil, errors.New(errors.ErrCodeProfileNotFound, "risk profile not found"))
	pub := &capturingPublisher{}
	svc := NewPublishingService(inner, pub, "test", nil)

	_, err := svc.Update(context.Background(), &profile.RiskProfile{ID: "missing"})
	require.Error(t, err)
	assert.Empty(t, pub.envelopes)
}

func TestPublishingService_PublishFailureDoesNotFailMutation(t *testing.T) {
	inner := new(mockInner)
	inner.On("Delete", mock.Anything, "p1").Return(nil)
	pub := &capturingPublisher{err: errors.New(errors.ErrCodeAssessmentPublishFailed, "broker down")}
	svc := NewPublishingService(inner, pub, "test", nil)

	require.NoError(t, svc.Delete(context.Background(), "p1"))
}

func TestPublishingService_SetDefault(t *testing.T) {
	inner := new(mockInner)
	inner.On("SetDefault", mock.Anything, "p2").Return(nil)
	pub := &capturingPublisher{}
	svc := NewPublishingService(inner, pub, "test", nil)

	require.NoError(t, svc.SetDefault(context.Background(), "p2"))
	require.Len(t, pub.envelopes, 1)

	var payload kafka.ProfileUpdatedPayload
	require.NoError(t, pub.envelopes[0].DecodePayload(&payload))
	assert.Equal(t, "default_changed", payload.Action)
}

func TestPublishingService_NilProducerReturnsInner(t *testing.T) {
	inner := new(mockInner)
	svc := NewPublishingService(inner, nil, "test", nil)
	assert.Same(t, profile.Service(inner), svc)
}

func TestPublishingService_ReadsPassThrough(t *testing.T) {
	inner := new(mockInner)
	inner.On("Get", mock.Anything, "p1").Return(&profile.RiskProfile{ID: "p1"}, nil)
	pub := &capturingPublisher{}
	svc := NewPublishingService(inner, pub, "test", nil)

	p, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Empty(t, pub.envelopes)
}
