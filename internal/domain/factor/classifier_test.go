package factor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_CanonicalLookupIsAuthoritative(t *testing.T) {
	d := Classify("ofac_sdn_sanctioned")

	assert.Equal(t, "OFAC SDN List", d.Label)
	assert.Equal(t, CategorySanctions, d.Category)
	assert.Equal(t, SeverityCritical, d.Severity)
	assert.Equal(t, LevelCritical, d.Level)
	assert.Equal(t, TypeSeed, d.Type)
	assert.NotEmpty(t, d.Description)
}

func TestClassify_LevelToSeverityConversion(t *testing.T) {
	cases := []struct {
		id   string
		want Severity
	}{
		{"ofac_sdn_sanctioned", SeverityCritical},
		{"regulatory_action", SeverityHigh},
		{"formerly_sanctioned", SeverityElevated},
		{"basel_aml_high_risk_jurisdiction", SeverityOther}, // Standard level
	}
	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.id).Severity)
		})
	}
}

func TestClassify_ExportControlsConsolidatedIntoSanctions(t *testing.T) {
	// Entries published under export_controls or the combined list category
	// must surface as sanctions to every consumer.
	for _, id := range []string{"bis_entity_list", "export_controls", "ofsi_financial_sanctions"} {
		d := Classify(id)
		assert.Equal(t, CategorySanctions, d.Category, "id %q", id)
	}
}

func TestClassify_CuratedFallbackUsedOnCanonicalMiss(t *testing.T) {
	_, inCanonical := canonicalCatalog["swiss_seco_sanctioned"]
	require.False(t, inCanonical, "test id must not be in the canonical table")

	d, tier := ClassifyWithTier("swiss_seco_sanctioned")
	assert.Equal(t, TierCurated, tier)
	assert.Equal(t, "Swiss SECO Sanctions", d.Label)
	assert.Equal(t, CategorySanctions, d.Category)
}

func TestClassify_AdjacentHeuristic(t *testing.T) {
	// Not in either table: resolved by the network-adjacency rule, which
	// downgrades one level from a direct hit.
	d, tier := ClassifyWithTier("ofac_sdn_adjacent")

	assert.Equal(t, TierHeuristic, tier)
	assert.Equal(t, TypeNetwork, d.Type)
	assert.Equal(t, CategorySanctions, d.Category)
	assert.Equal(t, SeverityElevated, d.Severity)
	assert.Equal(t, LevelElevated, d.Level)
	assert.Equal(t, "Ofac Sdn Adjacent", d.Label)
}

func TestClassify_UnknownIdFallsBackToRelevant(t *testing.T) {
	d := Classify("totally_unknown_xyz_123")

	assert.Equal(t, CategoryRelevant, d.Category)
	assert.Equal(t, SeverityOther, d.Severity)
	assert.Equal(t, "Totally Unknown Xyz 123", d.Label)
	assert.Empty(t, d.Level)
}

func TestClassify_Totality(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"_",
		"___",
		"a",
		"UPPERCASE_ID",
		"id-with-dashes",
		"风险因素",
		"mixed_风险_id",
		strings.Repeat("very_long_", 500),
	}
	for _, id := range inputs {
		d := Classify(id)
		assert.NotEmpty(t, d.Label, "label must never be empty for %q", id)
		assert.True(t, d.Category.IsDefined(), "category must be from the closed set for %q", id)
		assert.NotEmpty(t, d.Severity, "severity must be set for %q", id)
	}
}

func TestClassify_CacheReturnsStableResults(t *testing.T) {
	first := Classify("cache_probe_sanction_entry")
	second := Classify("cache_probe_sanction_entry")
	assert.Equal(t, first, second)
}

func TestClassify_ConcurrentUse(t *testing.T) {
	ids := []string{"ofac_sdn_sanctioned", "pep", "unknown_thing", "x_adjacent", "psa_whatever"}
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				for _, id := range ids {
					d := Classify(id)
					if d.Label == "" {
						t.Error("empty label")
						return
					}
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestCatalog_AllEntriesWellFormed(t *testing.T) {
	assert.Greater(t, CatalogSize(), 40)

	check := func(table map[string]catalogEntry, name string) {
		for id, e := range table {
			d := e.descriptor()
			assert.NotEmpty(t, d.Label, "%s entry %q has empty name", name, id)
			assert.True(t, d.Category.IsDefined(), "%s entry %q category %q outside closed set", name, id, d.Category)
			assert.NotEmpty(t, e.Level, "%s entry %q has no level", name, id)
		}
	}
	check(canonicalCatalog, "canonical")
	check(curatedFallback, "curated")
}
