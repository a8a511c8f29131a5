// Package profile defines the RiskProfile configuration unit: which risk
// factors are enabled for screening, their point values, and the threshold
// at which an entity's total score constitutes a breach.
//
// Profiles are created by administrator actions, loaded read-only by the
// scoring engine, and never mutated in place by it.
package profile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumenrisk/entity-screening/pkg/errors"
)

// MinThreshold is the sane minimum applied to malformed (non-positive)
// threshold configuration when scoring is enabled.
const MinThreshold = 1

// ErrMultipleDefaultProfiles is returned when a store holds more than one
// profile flagged as default. This is a configuration error that must be
// reported, never resolved by silently picking one.
var ErrMultipleDefaultProfiles = errors.New(
	errors.ErrCodeProfileMultipleDefaults,
	"more than one risk profile is flagged as default",
)

// CategoryConfig is descriptive per-category metadata carried on a profile.
// The Enabled flag is display metadata only: factor filtering consults the
// flat enabled-factor set exclusively, never this flag.
type CategoryConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// RiskProfile is an immutable configuration value selecting which factors
// are screened, how they are weighted, and the breach threshold.
type RiskProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// EnabledFactors is the set of factor ids the profile screens for.
	// Order is irrelevant; Normalize enforces uniqueness.
	EnabledFactors []string `json:"enabled_factors"`

	// IsDefault marks the profile applied when no profile is named
	// explicitly. Across all stored profiles at most one may be default.
	IsDefault bool `json:"is_default"`

	// RiskScoringEnabled gates the scorer: when false, scoring
	// short-circuits to a zero result.
	RiskScoringEnabled bool `json:"risk_scoring_enabled"`

	// RiskThreshold is the inclusive minimum total score that constitutes
	// a breach.
	RiskThreshold int `json:"risk_threshold"`

	// RiskScores maps factor id to point value. Factors absent from the
	// map contribute 0 points even when enabled.
	RiskScores map[string]int `json:"risk_scores"`

	// Categories carries descriptive category metadata. Not consulted by
	// filtering or scoring.
	Categories map[string]CategoryConfig `json:"categories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New constructs a RiskProfile with a fresh id and creation timestamps.
func New(name string) *RiskProfile {
	now := time.Now().UTC()
	return &RiskProfile{
		ID:         uuid.NewString(),
		Name:       name,
		RiskScores: map[string]int{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Normalize brings permissively-parsed configuration into canonical shape:
// enabled factors are deduplicated preserving first occurrence, and a
// non-positive threshold is raised to MinThreshold. Malformed numeric fields
// never produce an error; they are repaired in place.
func (p *RiskProfile) Normalize() {
	if p == nil {
		return
	}
	if len(p.EnabledFactors) > 0 {
		seen := make(map[string]struct{}, len(p.EnabledFactors))
		deduped := p.EnabledFactors[:0]
		for _, id := range p.EnabledFactors {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			deduped = append(deduped, id)
		}
		p.EnabledFactors = deduped
	}
	if p.RiskThreshold < MinThreshold {
		p.RiskThreshold = MinThreshold
	}
	if p.RiskScores == nil {
		p.RiskScores = map[string]int{}
	}
}

// Validate checks the fields an administrator must supply. It does not
// reject the permissive cases Normalize repairs.
func (p *RiskProfile) Validate() error {
	if p == nil {
		return errors.New(errors.ErrCodeProfileInvalid, "profile is nil")
	}
	if p.Name == "" {
		return errors.New(errors.ErrCodeProfileInvalid, "profile name is required")
	}
	if p.ID == "" {
		return errors.New(errors.ErrCodeProfileInvalid, "profile id is required")
	}
	return nil
}

// EnabledSet returns the enabled factor ids as a membership set.
func (p *RiskProfile) EnabledSet() map[string]struct{} {
	if p == nil {
		return nil
	}
	set := make(map[string]struct{}, len(p.EnabledFactors))
	for _, id := range p.EnabledFactors {
		set[id] = struct{}{}
	}
	return set
}

// IsEnabled reports whether the factor id is explicitly enabled. Filtering
// is flat id membership only; category-level Enabled flags are not
// consulted.
func (p *RiskProfile) IsEnabled(id string) bool {
	for _, enabled := range p.EnabledFactors {
		if enabled == id {
			return true
		}
	}
	return false
}

// ScoreFor returns the configured point value for a factor id, 0 when
// absent.
func (p *RiskProfile) ScoreFor(id string) int {
	if p == nil || p.RiskScores == nil {
		return 0
	}
	return p.RiskScores[id]
}

// DefaultProfile resolves the default profile among profiles. Zero defaults
// is a valid-but-degraded state and yields nil (callers fall back to "no
// filtering applied"); more than one default is a configuration error and
// yields ErrMultipleDefaultProfiles with the offending ids in the detail.
func DefaultProfile(profiles []*RiskProfile) (*RiskProfile, error) {
	var found *RiskProfile
	var defaults []string
	for _, p := range profiles {
		if p != nil && p.IsDefault {
			defaults = append(defaults, p.ID)
			if found == nil {
				found = p
			}
		}
	}
	if len(defaults) > 1 {
		return nil, ErrMultipleDefaultProfiles.WithDetail(fmt.Sprintf("profiles: %v", defaults))
	}
	return found, nil
}
