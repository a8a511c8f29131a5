package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenrisk/entity-screening/internal/domain/profile"
)

func factors(ids ...string) []Factor {
	fs := make([]Factor, len(ids))
	for i, id := range ids {
		fs[i] = Factor{ID: id}
	}
	return fs
}

func TestFilterByProfile_NilProfileFailsOpen(t *testing.T) {
	in := factors("a", "b", "a")

	out := FilterByProfile(in, nil)

	// Identity: order preserved, duplicates untouched.
	assert.Equal(t, in, out)
}

func TestFilterByProfile_Membership(t *testing.T) {
	p := &profile.RiskProfile{EnabledFactors: []string{"a"}}

	out := FilterByProfile(factors("a", "b"), p)

	assert.Equal(t, factors("a"), out)
}

func TestFilterByProfile_DeduplicatesByFirstOccurrence(t *testing.T) {
	p := &profile.RiskProfile{EnabledFactors: []string{"a", "b"}}

	out := FilterByProfile(factors("b", "a", "b", "a"), p)

	assert.Equal(t, factors("b", "a"), out)
}

func TestFilterByProfile_Idempotent(t *testing.T) {
	p := &profile.RiskProfile{EnabledFactors: []string{"a", "c"}}
	in := factors("c", "a", "x", "a")

	once := FilterByProfile(in, p)
	twice := FilterByProfile(once, p)

	assert.Equal(t, once, twice)
}

func TestFilterByProfile_EmptyEnabledSetDropsEverything(t *testing.T) {
	p := &profile.RiskProfile{}

	out := FilterByProfile(factors("a", "b"), p)

	assert.Empty(t, out)
}

func TestFilterByProfile_CategoryEnabledFlagIgnored(t *testing.T) {
	// Category-level Enabled is descriptive metadata; only the flat
	// enabled-factor set decides inclusion.
	p := &profile.RiskProfile{
		EnabledFactors: []string{"pep"},
		Categories: map[string]profile.CategoryConfig{
			"political_exposure": {Name: "Political Exposure", Enabled: false},
			"sanctions":          {Name: "Sanctions", Enabled: true},
		},
	}

	out := FilterByProfile(factors("pep", "ofac_sdn_sanctioned"), p)

	assert.Equal(t, factors("pep"), out)
}

func TestFilterIDs(t *testing.T) {
	p := &profile.RiskProfile{EnabledFactors: []string{"a"}}

	assert.Equal(t, []string{"a"}, FilterIDs([]string{"a", "b", "a"}, p))

	in := []string{"x", "y"}
	assert.Equal(t, in, FilterIDs(in, nil))
}

func TestFilterByProfile_NilAndEmptyInput(t *testing.T) {
	p := &profile.RiskProfile{EnabledFactors: []string{"a"}}

	assert.Empty(t, FilterByProfile(nil, p))
	assert.Empty(t, FilterByProfile([]Factor{}, p))
}
