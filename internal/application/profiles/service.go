// Package profiles decorates the domain profile service with event
// publication so downstream consumers can react to profile changes.
package profiles

import (
	"context"
	"time"

	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/messaging/kafka"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
)

// Publisher is the slice of the kafka producer the decorator needs.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, envelope *kafka.EventEnvelope) error
}

// publishingService wraps a profile.Service and emits profile.updated events
// after successful mutations. Publish failures never fail the mutation.
type publishingService struct {
	profile.Service
	producer Publisher
	source   string
	logger   logging.Logger
}

// NewPublishingService decorates inner with kafka event emission. A nil
// producer returns inner unchanged.
func NewPublishingService(inner profile.Service, producer Publisher, source string, log logging.Logger) profile.Service {
	if producer == nil {
		return inner
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	if source == "" {
		source = "screening-service"
	}
	return &publishingService{
		Service:  inner,
		producer: producer,
		source:   source,
		logger:   log.Named("profile_events"),
	}
}

func (s *publishingService) Create(ctx context.Context, p *profile.RiskProfile) (*profile.RiskProfile, error) {
	created, err := s.Service.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, created.ID, "created", created.IsDefault)
	return created, nil
}

func (s *publishingService) Update(ctx context.Context, p *profile.RiskProfile) (*profile.RiskProfile, error) {
	updated, err := s.Service.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, updated.ID, "updated", updated.IsDefault)
	return updated, nil
}

func (s *publishingService) Delete(ctx context.Context, id string) error {
	if err := s.Service.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, "deleted", false)
	return nil
}

func (s *publishingService) SetDefault(ctx context.Context, id string) error {
	if err := s.Service.SetDefault(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, "default_changed", true)
	return nil
}

func (s *publishingService) publish(ctx context.Context, profileID, action string, isDefault bool) {
	envelope, err := kafka.NewEventEnvelope(kafka.TopicProfileUpdated, s.source, kafka.ProfileUpdatedPayload{
		ProfileID: profileID,
		Action:    action,
		IsDefault: isDefault,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to build profile event", logging.Err(err))
		return
	}
	if err := s.producer.Publish(ctx, kafka.TopicProfileUpdated, profileID, envelope); err != nil {
		s.logger.Warn("failed to publish profile event",
			logging.String("profile_id", profileID),
			logging.String("action", action),
			logging.Err(err),
		)
	}
}
