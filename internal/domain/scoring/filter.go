// Package scoring implements the risk filter and scorer: pure functions
// from a set of triggered factor ids and a risk profile to the filtered id
// set and the weighted score verdict. Both are total over any input and
// never return an error.
package scoring

import (
	"github.com/lumenrisk/entity-screening/internal/domain/profile"
)

// Factor is a triggered risk factor reference as extracted from a raw
// screening result.
type Factor struct {
	ID string `json:"id"`
}

// FilterByProfile intersects factors with the profile's enabled-factor set.
//
// A nil profile means no profile is configured; filtering fails open and the
// input is returned unchanged, order preserved, without deduplication. With
// a profile, only explicitly enabled ids survive, deduplicated by first
// occurrence. Membership is flat id membership: the profile's per-category
// Enabled flags are descriptive metadata and are not consulted here.
func FilterByProfile(factors []Factor, p *profile.RiskProfile) []Factor {
	if p == nil {
		return factors
	}
	enabled := p.EnabledSet()
	seen := make(map[string]struct{}, len(factors))
	kept := make([]Factor, 0, len(factors))
	for _, f := range factors {
		if _, ok := enabled[f.ID]; !ok {
			continue
		}
		if _, dup := seen[f.ID]; dup {
			continue
		}
		seen[f.ID] = struct{}{}
		kept = append(kept, f)
	}
	return kept
}

// FilterIDs is FilterByProfile over bare factor ids.
func FilterIDs(ids []string, p *profile.RiskProfile) []string {
	if p == nil {
		return ids
	}
	factors := make([]Factor, len(ids))
	for i, id := range ids {
		factors[i] = Factor{ID: id}
	}
	kept := FilterByProfile(factors, p)
	out := make([]string, len(kept))
	for i, f := range kept {
		out[i] = f.ID
	}
	return out
}
