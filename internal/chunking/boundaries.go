package chunking

import "strings"

// genericBoundaryElements is the semantic-boundary fallback for any
// document type without a dedicated set (spec.md §4.5a).
var genericBoundaryElements = []string{
	"section", "chapter", "article", "entry", "item", "record", "entity", "document", "part",
}

// typeBoundaryElements maps a substring of SpecializedAnalysis.TypeName
// (matched case-insensitively) to its semantic-boundary element set.
var typeBoundaryElements = map[string][]string{
	"scap":     {"Rule", "Group"},
	"ant":      {"target"},
	"spring":   {"bean"},
	"docbook":  {"section", "chapter"},
	"xliff":    {"trans-unit"},
	"kml":      {"Placemark"},
	"graphml":  {"node", "edge"},
}

// boundaryElementsFor returns the semantic-boundary set for a detected
// document type, falling back to the generic set when nothing in
// typeBoundaryElements matches.
func boundaryElementsFor(typeName string) map[string]bool {
	lower := strings.ToLower(typeName)
	for key, elements := range typeBoundaryElements {
		if strings.Contains(lower, key) {
			return toSet(elements)
		}
	}
	return toSet(genericBoundaryElements)
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
