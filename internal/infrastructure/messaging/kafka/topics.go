// Package kafka publishes and consumes screening lifecycle events.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lumenrisk/entity-screening/pkg/errors"
)

// Topics emitted and consumed by the screening service.
const (
	TopicEntityAssessed     = "entity.assessed"
	TopicScreeningCompleted = "screening.completed"
	TopicProfileUpdated     = "profile.updated"
	TopicDeadLetter         = "dead_letter.screening"
)

// EventEnvelope standardizes event messages on the wire.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	TraceID       string            `json:"trace_id,omitempty"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// EntityAssessedPayload is emitted after each entity assessment.
type EntityAssessedPayload struct {
	EntityID       string    `json:"entity_id"`
	ProfileID      string    `json:"profile_id,omitempty"`
	TotalScore     int       `json:"total_score"`
	MeetsThreshold bool      `json:"meets_threshold"`
	Threshold      int       `json:"threshold"`
	FactorCount    int       `json:"factor_count"`
	AssessedAt     time.Time `json:"assessed_at"`
}

// ScreeningCompletedPayload carries the raw outcome of an upstream entity
// screening: the entity and the factor ids it triggered. The worker consumes
// these and runs an assessment per message.
type ScreeningCompletedPayload struct {
	ScreeningID string    `json:"screening_id"`
	EntityID    string    `json:"entity_id"`
	ProfileID   string    `json:"profile_id,omitempty"`
	FactorIDs   []string  `json:"factor_ids"`
	CompletedAt time.Time `json:"completed_at"`
}

// ProfileUpdatedPayload is emitted when a risk profile changes.
type ProfileUpdatedPayload struct {
	ProfileID string    `json:"profile_id"`
	Action    string    `json:"action"`
	IsDefault bool      `json:"is_default"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEventEnvelope wraps payload in an envelope with a fresh event id.
func NewEventEnvelope(eventType, source string, payload any) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal event payload")
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: "v1",
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the envelope payload into target.
func (e *EventEnvelope) DecodePayload(target any) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return errors.New(errors.ErrCodeSerialization, "event payload is empty")
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode event payload")
	}
	return nil
}
