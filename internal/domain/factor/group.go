package factor

import "sort"

// Grouped is one classified factor inside a category bucket.
type Grouped struct {
	ID         string     `json:"id"`
	Descriptor Descriptor `json:"descriptor"`
}

// Group classifies every id and buckets the results by category. Category
// consolidation and closed-set redirection happen inside Classify, so the
// returned keys are always a subset of the defined category set, which
// downstream display code depends on. Insertion order of factors within a
// category is preserved from the input; use SortMembers for display order.
//
// An empty input produces an empty map. Distinguishing "no risk found" from
// an empty list is the caller's responsibility.
func Group(ids []string) map[Category][]Grouped {
	groups := make(map[Category][]Grouped)
	for _, id := range ids {
		d := Classify(id)
		groups[d.Category] = append(groups[d.Category], Grouped{ID: id, Descriptor: d})
	}
	return groups
}

// MaxSeverity computes the highest severity across a category's members,
// preferring each member's Level over its Severity when present. An empty
// member list yields SeverityOther.
func MaxSeverity(members []Grouped) Severity {
	best := 0
	for _, m := range members {
		if r := m.Descriptor.rank(); r > best {
			best = r
		}
	}
	switch best {
	case 4:
		return SeverityCritical
	case 3:
		return SeverityHigh
	case 2:
		return SeverityElevated
	default:
		return SeverityOther
	}
}

// SortedCategories returns the map's keys in the fixed presentation order:
// sanctions, political_exposure, regulatory_action, forced_labor,
// environmental_risk, adverse_media, relevant. Categories outside the closed
// set cannot occur in Group output but would sort last.
func SortedCategories(groups map[Category][]Grouped) []Category {
	cats := make([]Category, 0, len(groups))
	for c := range groups {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		return cats[i].DisplayOrder() < cats[j].DisplayOrder()
	})
	return cats
}

// SortMembers returns a copy of members in display order: most serious level
// first (preferring Level over Severity for each member's rank), ties broken
// by provenance type in the order seed, network, psa, other. The input slice
// is not mutated.
func SortMembers(members []Grouped) []Grouped {
	sorted := make([]Grouped, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Descriptor.rank(), sorted[j].Descriptor.rank()
		if ri != rj {
			return ri > rj
		}
		return sorted[i].Descriptor.Type.tieBreak() < sorted[j].Descriptor.Type.tieBreak()
	})
	return sorted
}
