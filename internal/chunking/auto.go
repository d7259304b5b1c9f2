package chunking

import (
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// hierarchicalFriendlyTypes names the document types auto-selection
// treats as hierarchical-friendly (spec.md §4.5d, step 1): SCAP,
// DocBook, Spring and XLIFF. Each of these also has a dedicated set in
// typeBoundaryElements; the other keys there (Ant, KML, GraphML) are
// not in this list.
var hierarchicalFriendlyTypes = []string{"scap", "docbook", "spring", "xliff"}

// decideStrategy implements the auto decision procedure (spec.md
// §4.5d).
func decideStrategy(doc *xmlparser.Document, typeName string) string {
	lower := strings.ToLower(typeName)
	for _, key := range hierarchicalFriendlyTypes {
		if strings.Contains(lower, key) {
			return "hierarchical"
		}
	}

	counts := map[string]int{}
	for _, c := range doc.Root.Children {
		counts[c.Local]++
	}
	distinctWithTwoOrMore := 0
	for _, n := range counts {
		if n >= 2 {
			distinctWithTwoOrMore++
		}
	}
	if distinctWithTwoOrMore >= 3 {
		return "content-aware"
	}
	return "sliding-window"
}
