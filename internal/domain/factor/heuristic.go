package factor

import "strings"

// heuristicRule pairs a predicate with a descriptor producer. Rules are
// evaluated strictly in slice order; the first match wins. The final rule
// matches unconditionally, which makes the heuristic tier total.
type heuristicRule struct {
	name  string
	match func(id string) bool
	apply func(id string) Descriptor
}

// severityForRawCategory implements the category-based severity rule of the
// heuristic path: critical for sanctions-class and forced-labor categories,
// high for political exposure, other for everything else. It operates on the
// raw (pre-consolidation) category string so that export-control ids rank
// critical regardless of when consolidation is applied.
func severityForRawCategory(raw string) Severity {
	switch raw {
	case "sanctions", "export_controls", "sanctions_and_export_control_lists", "forced_labor":
		return SeverityCritical
	case "political_exposure":
		return SeverityHigh
	default:
		return SeverityOther
	}
}

// inferredDescriptor builds a heuristic-tier descriptor for id with the given
// raw category, applying consolidation and the category-based severity rule.
func inferredDescriptor(id, rawCategory string, typ Type) Descriptor {
	return Descriptor{
		Label:    labelFromID(id),
		Category: CategoryFrom(rawCategory),
		Severity: severityForRawCategory(rawCategory),
		Type:     typ,
	}
}

// substringCategories lists the substring-to-category inferences in priority
// order. Order matters: "sanction" outranks "pep" when both appear in an id.
var substringCategories = []struct {
	substr   string
	category string
}{
	{"sanction", "sanctions"},
	{"pep", "political_exposure"},
	{"adverse_media", "adverse_media"},
	{"regulatory", "regulatory_action"},
	{"environmental", "environmental_risk"},
	{"forced_labor", "forced_labor"},
}

// heuristicRules is the ordered rule table of the final classification tier.
// Network-adjacency is checked first: one-hop proximity to a risk is
// deliberately downgraded one level from a direct hit, overriding the
// category-based severity rule.
var heuristicRules = buildHeuristicRules()

func buildHeuristicRules() []heuristicRule {
	rules := []heuristicRule{
		{
			name: "network_adjacent",
			match: func(id string) bool {
				return strings.Contains(id, "_adjacent")
			},
			apply: func(id string) Descriptor {
				return Descriptor{
					Label:    labelFromID(id),
					Category: CategorySanctions,
					Severity: SeverityElevated,
					Level:    LevelElevated,
					Type:     TypeNetwork,
				}
			},
		},
		{
			name: "psa_prefix",
			match: func(id string) bool {
				return strings.HasPrefix(id, "psa_")
			},
			apply: func(id string) Descriptor {
				return inferredDescriptor(id, "sanctions", TypePSA)
			},
		},
		{
			name: "seed_prefix",
			match: func(id string) bool {
				return strings.HasPrefix(id, "seed_")
			},
			apply: func(id string) Descriptor {
				return inferredDescriptor(id, "regulatory_action", TypeSeed)
			},
		},
	}

	for _, sc := range substringCategories {
		sc := sc
		rules = append(rules, heuristicRule{
			name: "substring_" + sc.substr,
			match: func(id string) bool {
				return strings.Contains(id, sc.substr)
			},
			apply: func(id string) Descriptor {
				return inferredDescriptor(id, sc.category, TypeUnknown)
			},
		})
	}

	rules = append(rules, heuristicRule{
		name:  "default_relevant",
		match: func(string) bool { return true },
		apply: func(id string) Descriptor {
			return inferredDescriptor(id, "relevant", TypeUnknown)
		},
	})

	return rules
}

// inferDescriptor runs the ordered heuristic rule table. It always produces
// a descriptor because the final rule matches any id.
func inferDescriptor(id string) Descriptor {
	for _, rule := range heuristicRules {
		if rule.match(id) {
			return rule.apply(id)
		}
	}
	// Unreachable: the last rule matches unconditionally.
	return inferredDescriptor(id, "relevant", TypeUnknown)
}
