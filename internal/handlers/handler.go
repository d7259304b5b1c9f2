// Package handlers implements the Handler Base & Registry (spec.md
// §4.2) and the Handler Dispatch Engine (§4.3): a capability-based
// registry of specialized handlers, each able to vote on whether it
// recognizes a parsed XML document, and the dispatch logic that picks
// the highest-confidence winner and runs its analysis.
package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// Handler is the uniform contract every specialized handler satisfies.
// Implementations must be side-effect free with respect to the parsed
// tree: no handler may mutate root, and no handler may cache state
// across calls (spec.md §4.4, "State machines").
type Handler interface {
	// Name is the handler's short slug, used for registry lookup and
	// config. The dispatch engine stamps the handler's Go type name,
	// not Name, into SpecializedAnalysis.Metadata["handler_used"].
	Name() string

	// CanHandle reports whether this handler recognizes the document
	// and how confident it is, in [0, 1]. Must be deterministic and
	// side-effect free; implementations should short-circuit on an
	// obvious namespace or root-element mismatch before doing any
	// deeper tree inspection.
	CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64)

	// DetectType is only called after a positive CanHandle verdict.
	DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo

	// Analyze produces the full report. May re-walk the tree.
	Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error)

	// ExtractKeyData produces the handler-specific structured-data
	// payload embedded at SpecializedAnalysis.StructuredData.
	ExtractKeyData(root *xmlparser.Node) map[string]interface{}
}
