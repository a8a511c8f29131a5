// Package screening orchestrates entity risk assessment: it resolves the
// active risk profile, filters triggered factors against it, scores the
// survivors and classifies them for categorized display.
package screening

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/lumenrisk/entity-screening/internal/domain/factor"
	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/domain/scoring"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/redis"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/messaging/kafka"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/prometheus"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

// AssessmentRequest names the entity under review and the risk factor ids
// its screening results triggered.
type AssessmentRequest struct {
	EntityID  string   `json:"entity_id"`
	FactorIDs []string `json:"factor_ids"`

	// ProfileID selects a specific profile. Empty means the stored default
	// profile; when none exists, no filtering is applied.
	ProfileID string `json:"profile_id,omitempty"`
}

// ClassifiedFactor is one classified risk factor in an assessment.
type ClassifiedFactor struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Category    factor.Category `json:"category"`
	Severity    factor.Severity `json:"severity"`
	Level       factor.Level    `json:"level,omitempty"`
	Description string          `json:"description,omitempty"`
	Type        factor.Type     `json:"type,omitempty"`
}

// CategoryGroup is one display category with its member factors, ordered by
// severity.
type CategoryGroup struct {
	Category factor.Category    `json:"category"`
	Factors  []ClassifiedFactor `json:"factors"`
}

// Assessment is the full result of screening one entity.
type Assessment struct {
	EntityID    string                  `json:"entity_id"`
	ProfileID   string                  `json:"profile_id,omitempty"`
	Score       scoring.EntityRiskScore `json:"score"`
	Categories  []CategoryGroup         `json:"categories"`
	MaxSeverity factor.Severity         `json:"max_severity"`
	AssessedAt  time.Time               `json:"assessed_at"`
}

// Service performs entity risk assessments.
type Service interface {
	Assess(ctx context.Context, req AssessmentRequest) (*Assessment, error)
}

// Options carries the optional collaborators. Any field may be nil.
type Options struct {
	Cache    redis.Cache
	Producer *kafka.Producer
	Metrics  *prometheus.AppMetrics
	CacheTTL time.Duration
	Source   string
}

type service struct {
	profiles profile.Service
	cache    redis.Cache
	producer *kafka.Producer
	metrics  *prometheus.AppMetrics
	cacheTTL time.Duration
	source   string
	logger   logging.Logger
}

// NewService creates the screening service.
func NewService(profiles profile.Service, log logging.Logger, opts Options) Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 15 * time.Minute
	}
	if opts.Source == "" {
		opts.Source = "screening-service"
	}
	return &service{
		profiles: profiles,
		cache:    opts.Cache,
		producer: opts.Producer,
		metrics:  opts.Metrics,
		cacheTTL: opts.CacheTTL,
		source:   opts.Source,
		logger:   log.Named("screening"),
	}
}

func (s *service) Assess(ctx context.Context, req AssessmentRequest) (*Assessment, error) {
	if req.EntityID == "" {
		return nil, errors.New(errors.ErrCodeAssessmentInputInvalid, "entity id is required")
	}

	start := time.Now()
	ids := dedupe(req.FactorIDs)

	active, err := s.resolveProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		key := cacheKey(req.EntityID, active, ids)
		var cached Assessment
		computed := false
		err := s.cache.GetOrSet(ctx, key, &cached, s.cacheTTL, func(context.Context) (any, error) {
			computed = true
			return s.assess(req.EntityID, active, ids), nil
		})
		if err != nil {
			s.logger.Warn("cache read-through failed, computing directly",
				logging.String("entity_id", req.EntityID), logging.Err(err))
			result := s.assess(req.EntityID, active, ids)
			s.finish(ctx, result, start)
			return result, nil
		}
		s.countCache(!computed)
		if computed {
			s.finish(ctx, &cached, start)
		}
		return &cached, nil
	}

	result := s.assess(req.EntityID, active, ids)
	s.finish(ctx, result, start)
	return result, nil
}

// resolveProfile loads the named profile, or the stored default. A missing
// default is fail-open: screening proceeds with no filtering.
func (s *service) resolveProfile(ctx context.Context, profileID string) (*profile.RiskProfile, error) {
	if profileID != "" {
		p, err := s.profiles.Get(ctx, profileID)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return s.profiles.ActiveProfile(ctx)
}

// assess is the pure assembly step: filter, score, classify, group.
func (s *service) assess(entityID string, p *profile.RiskProfile, ids []string) *Assessment {
	filtered := scoring.FilterIDs(ids, p)
	if s.metrics != nil {
		for _, id := range filtered {
			_, tier := factor.ClassifyWithTier(id)
			s.metrics.ClassificationTiers.WithLabelValues(string(tier)).Inc()
		}
	}
	score := scoring.Score(filtered, p)

	groups := factor.Group(filtered)
	categories := make([]CategoryGroup, 0, len(groups))
	var allMembers []factor.Grouped
	for _, cat := range factor.SortedCategories(groups) {
		members := factor.SortMembers(groups[cat])
		allMembers = append(allMembers, members...)

		factors := make([]ClassifiedFactor, len(members))
		for i, m := range members {
			factors[i] = ClassifiedFactor{
				ID:          m.ID,
				Label:       m.Descriptor.Label,
				Category:    m.Descriptor.Category,
				Severity:    m.Descriptor.Severity,
				Level:       m.Descriptor.Level,
				Description: m.Descriptor.Description,
				Type:        m.Descriptor.Type,
			}
			if s.metrics != nil {
				s.metrics.FactorsClassified.WithLabelValues(string(m.Descriptor.Category)).Inc()
			}
		}
		categories = append(categories, CategoryGroup{Category: cat, Factors: factors})
	}

	result := &Assessment{
		EntityID:    entityID,
		Score:       score,
		Categories:  categories,
		MaxSeverity: factor.MaxSeverity(allMembers),
		AssessedAt:  time.Now().UTC(),
	}
	if p != nil {
		result.ProfileID = p.ID
	}
	return result
}

// finish records metrics and publishes the assessment event.
func (s *service) finish(ctx context.Context, result *Assessment, start time.Time) {
	outcome := "scored"
	if result.Score.Threshold == 0 {
		outcome = "scoring_disabled"
	}
	if s.metrics != nil {
		s.metrics.AssessmentsTotal.WithLabelValues(outcome).Inc()
		s.metrics.AssessmentDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		if result.Score.MeetsThreshold {
			s.metrics.ThresholdBreaches.WithLabelValues().Inc()
		}
	}

	if s.producer == nil {
		return
	}
	payload := kafka.EntityAssessedPayload{
		EntityID:       result.EntityID,
		ProfileID:      result.ProfileID,
		TotalScore:     result.Score.TotalScore,
		MeetsThreshold: result.Score.MeetsThreshold,
		Threshold:      result.Score.Threshold,
		FactorCount:    len(result.Score.TriggeredRiskFactors),
		AssessedAt:     result.AssessedAt,
	}
	envelope, err := kafka.NewEventEnvelope("entity.assessed", s.source, payload)
	if err != nil {
		s.logger.Error("failed to build assessment event", logging.Err(err))
		return
	}
	if err := s.producer.Publish(ctx, kafka.TopicEntityAssessed, result.EntityID, envelope); err != nil {
		if s.metrics != nil {
			s.metrics.EventsPublished.WithLabelValues(kafka.TopicEntityAssessed, "error").Inc()
		}
		// Event emission is best-effort; the assessment itself stands.
		s.logger.Error("failed to publish assessment event",
			logging.String("entity_id", result.EntityID), logging.Err(err))
		return
	}
	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(kafka.TopicEntityAssessed, "ok").Inc()
	}
}

func (s *service) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues("assessment").Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues("assessment").Inc()
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// cacheKey derives a stable key from the entity, profile identity and the
// triggered factor set. The factor ids are hashed order-insensitively so
// equivalent requests share an entry.
func cacheKey(entityID string, p *profile.RiskProfile, ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	h := sha256.New()
	h.Write([]byte(strings.Join(sorted, "\x00")))
	digest := hex.EncodeToString(h.Sum(nil))[:16]

	profileKey := "none"
	if p != nil {
		profileKey = p.ID
	}
	return "assessment:" + entityID + ":" + profileKey + ":" + digest
}
