package factor

import "sync"

// classifyCache memoizes id-to-descriptor resolutions. The underlying tables
// are immutable for the process lifetime, so entries are never invalidated.
// Caching is a performance optimization only; Classify is correct without it.
var classifyCache sync.Map // string -> Descriptor

// Classify resolves a raw factor id into a Descriptor. It is total: any
// input string, including the empty string, yields a well-formed descriptor
// with a non-empty label and a category from the closed set.
//
// Resolution order, first match wins:
//
//  1. Canonical dataset lookup (authoritative).
//  2. Curated fallback table (legacy and alternate ids).
//  3. Heuristic inference from the id's naming convention (always succeeds).
func Classify(id string) Descriptor {
	if cached, ok := classifyCache.Load(id); ok {
		return cached.(Descriptor)
	}

	d, _ := resolve(id)
	classifyCache.Store(id, d)
	return d
}

// ResolutionTier identifies which tier of the classifier produced a
// descriptor, for observability.
type ResolutionTier string

const (
	TierCanonical ResolutionTier = "canonical"
	TierCurated   ResolutionTier = "curated"
	TierHeuristic ResolutionTier = "heuristic"
)

// ClassifyWithTier is Classify plus the tier that resolved the id. The tier
// is recomputed on cache hits only for uncached ids; callers that need the
// tier for metrics should treat it as best-effort.
func ClassifyWithTier(id string) (Descriptor, ResolutionTier) {
	d, tier := resolve(id)
	classifyCache.Store(id, d)
	return d, tier
}

func resolve(id string) (Descriptor, ResolutionTier) {
	if entry, ok := canonicalCatalog[id]; ok {
		return entry.descriptor(), TierCanonical
	}
	if entry, ok := curatedFallback[id]; ok {
		return entry.descriptor(), TierCurated
	}
	return inferDescriptor(id), TierHeuristic
}

// descriptor converts a table entry into a Descriptor, applying category
// consolidation and the level-to-severity conversion.
func (e catalogEntry) descriptor() Descriptor {
	label := e.Name
	if label == "" {
		label = "Unknown Risk Factor"
	}
	return Descriptor{
		Label:       label,
		Category:    CategoryFrom(e.Category),
		Severity:    severityFromLevel(e.Level),
		Level:       e.Level,
		Description: e.Description,
		Type:        e.Type,
	}
}
