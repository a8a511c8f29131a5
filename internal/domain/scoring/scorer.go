package scoring

import (
	"github.com/lumenrisk/entity-screening/internal/domain/profile"
)

// TriggeredFactor is one scored line item in a risk score breakdown.
type TriggeredFactor struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// EntityRiskScore is the scoring verdict for one entity against one
// profile. TotalScore always equals the sum of the TriggeredRiskFactors
// scores.
type EntityRiskScore struct {
	TotalScore           int               `json:"total_score"`
	TriggeredRiskFactors []TriggeredFactor `json:"triggered_risk_factors"`
	MeetsThreshold       bool              `json:"meets_threshold"`

	// Threshold is the profile's breach threshold, or 0 when scoring is
	// disabled. Callers use 0 to suppress score display entirely.
	Threshold int `json:"threshold"`
}

// Score computes the weighted risk score for the triggered factor ids
// against the profile.
//
// When the profile is nil or has scoring disabled, the result is the zero
// verdict with Threshold 0 regardless of the input ids. Otherwise each id
// contributes its configured point value, ids absent from the score map
// contribute 0, and only entries with a positive score appear in the
// breakdown. MeetsThreshold uses an inclusive boundary: a total exactly at
// the threshold is a breach.
//
// Score is pure and total; it never returns an error and does not mutate
// the profile.
func Score(triggeredIDs []string, p *profile.RiskProfile) EntityRiskScore {
	if p == nil || !p.RiskScoringEnabled {
		return EntityRiskScore{
			TriggeredRiskFactors: []TriggeredFactor{},
			Threshold:            0,
		}
	}

	threshold := p.RiskThreshold
	if threshold < profile.MinThreshold {
		threshold = profile.MinThreshold
	}

	triggered := make([]TriggeredFactor, 0, len(triggeredIDs))
	total := 0
	for _, id := range triggeredIDs {
		score := p.ScoreFor(id)
		if score <= 0 {
			continue
		}
		triggered = append(triggered, TriggeredFactor{ID: id, Score: score})
		total += score
	}

	return EntityRiskScore{
		TotalScore:           total,
		TriggeredRiskFactors: triggered,
		MeetsThreshold:       total >= threshold,
		Threshold:            threshold,
	}
}

// ScoreFiltered filters the ids against the profile and scores the
// survivors in one step.
func ScoreFiltered(ids []string, p *profile.RiskProfile) EntityRiskScore {
	return Score(FilterIDs(ids, p), p)
}
