// Package factor implements classification of raw risk-factor identifiers
// returned by the external screening source into categorized, leveled,
// human-readable descriptors, and the grouping of classified factors for
// display.
//
// Classification is total: for any input string a well-formed Descriptor is
// produced, resolved through three tiers (canonical table, curated fallback
// table, heuristic inference). All functions in this package are pure and
// safe for concurrent use.
package factor

import "strings"

// Category is the closed set of risk categories. Any raw category string
// outside this set collapses into CategoryRelevant.
type Category string

const (
	CategorySanctions         Category = "sanctions"
	CategoryPoliticalExposure Category = "political_exposure"
	CategoryRegulatoryAction  Category = "regulatory_action"
	CategoryForcedLabor       Category = "forced_labor"
	CategoryEnvironmentalRisk Category = "environmental_risk"
	CategoryAdverseMedia      Category = "adverse_media"
	CategoryRelevant          Category = "relevant"
)

// categorySynonyms maps raw category strings that are synonyms of a defined
// category onto it. Export-control lists are consolidated into sanctions
// before grouping or counting, by every consumer.
var categorySynonyms = map[string]Category{
	"export_controls":                    CategorySanctions,
	"sanctions_and_export_control_lists": CategorySanctions,
}

// definedCategories is the membership set for the closed category enum.
var definedCategories = map[Category]struct{}{
	CategorySanctions:         {},
	CategoryPoliticalExposure: {},
	CategoryRegulatoryAction:  {},
	CategoryForcedLabor:       {},
	CategoryEnvironmentalRisk: {},
	CategoryAdverseMedia:      {},
	CategoryRelevant:          {},
}

// CategoryFrom converts a raw category string to a Category. Synonym
// consolidation is applied first; anything still outside the defined set is
// redirected to CategoryRelevant, which guarantees every consumer only ever
// sees keys from the closed set.
func CategoryFrom(raw string) Category {
	if c, ok := categorySynonyms[raw]; ok {
		return c
	}
	c := Category(raw)
	if _, ok := definedCategories[c]; ok {
		return c
	}
	return CategoryRelevant
}

// IsDefined reports whether c is a member of the closed category set.
func (c Category) IsDefined() bool {
	_, ok := definedCategories[c]
	return ok
}

// categoryDisplayOrder fixes the presentation order of categories. Unknown
// categories sort last.
var categoryDisplayOrder = map[Category]int{
	CategorySanctions:         0,
	CategoryPoliticalExposure: 1,
	CategoryRegulatoryAction:  2,
	CategoryForcedLabor:       3,
	CategoryEnvironmentalRisk: 4,
	CategoryAdverseMedia:      5,
	CategoryRelevant:          6,
}

// DisplayOrder returns the fixed presentation rank of c; categories outside
// the closed set sort after every defined one.
func (c Category) DisplayOrder() int {
	if order, ok := categoryDisplayOrder[c]; ok {
		return order
	}
	return len(categoryDisplayOrder)
}

// Severity is the coarse-grained seriousness of a factor.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityElevated Severity = "elevated"
	SeverityOther    Severity = "other"
)

// Rank returns the comparison rank of a severity: critical=4 > high=3 >
// elevated=2 > other=1. Unknown values rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityElevated:
		return 2
	default:
		return 1
	}
}

// Level is the finer-grained seriousness label carried by the canonical
// dataset. When present it is preferred over Severity for display and
// sorting.
type Level string

const (
	LevelCritical Level = "Critical"
	LevelHigh     Level = "High"
	LevelElevated Level = "Elevated"
	LevelStandard Level = "Standard"
)

// Rank maps a level to the severity rank scale: Critical=4, High=3,
// Elevated=2, Standard and anything else=1.
func (l Level) Rank() int {
	switch l {
	case LevelCritical:
		return 4
	case LevelHigh:
		return 3
	case LevelElevated:
		return 2
	default:
		return 1
	}
}

// severityFromLevel converts a canonical-dataset level to a Severity:
// Critical->critical, High->high, Elevated->elevated, everything else->other.
func severityFromLevel(l Level) Severity {
	switch l {
	case LevelCritical:
		return SeverityCritical
	case LevelHigh:
		return SeverityHigh
	case LevelElevated:
		return SeverityElevated
	default:
		return SeverityOther
	}
}

// Type is the provenance tag of a factor, used only as a sort tie-breaker.
type Type string

const (
	TypePSA     Type = "psa"
	TypeSeed    Type = "seed"
	TypeNetwork Type = "network"
	TypeUnknown Type = "unknown"
)

// tieBreak returns the within-category sort order of a provenance type:
// seed(0) < network(1) < psa(2) < other(3).
func (t Type) tieBreak() int {
	switch t {
	case TypeSeed:
		return 0
	case TypeNetwork:
		return 1
	case TypePSA:
		return 2
	default:
		return 3
	}
}

// Descriptor is the structured, human-readable classification of a raw
// factor id. Descriptors are computed fresh on each call and never
// persisted.
type Descriptor struct {
	// Label is the human-readable name. Never empty.
	Label string `json:"label"`

	// Category is always a member of the closed category set.
	Category Category `json:"category"`

	// Severity is the coarse seriousness, derived from Level when one is
	// known.
	Severity Severity `json:"severity"`

	// Level is the finer-grained label, empty when the source tier did not
	// provide one. Preferred over Severity for display and sorting when
	// present.
	Level Level `json:"level,omitempty"`

	// Description is optional prose.
	Description string `json:"description,omitempty"`

	// Type is the optional provenance tag.
	Type Type `json:"type,omitempty"`
}

// rank returns the effective seriousness rank of the descriptor, preferring
// Level over Severity when a level is present.
func (d Descriptor) rank() int {
	if d.Level != "" {
		return d.Level.Rank()
	}
	return d.Severity.Rank()
}

// labelFromID derives a display label from a raw factor id by replacing
// underscores with spaces and title-casing each word. It is the label of
// last resort for ids not covered by either lookup table.
func labelFromID(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '_' || r == ' ' })
	if len(words) == 0 {
		return "Unknown Risk Factor"
	}
	for i, w := range words {
		runes := []rune(w)
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
