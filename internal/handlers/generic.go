package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const genericHandlerName = "generic"

// GenericHandler is the last-resort handler: CanHandle always accepts,
// with confidence 0.0, and DetectType reports "Generic XML" at
// confidence 0.3, guaranteeing the dispatch engine never returns
// "unhandled" (spec.md §4.2).
type GenericHandler struct{}

func NewGenericHandler() *GenericHandler { return &GenericHandler{} }

func (h *GenericHandler) Name() string { return genericHandlerName }

func (h *GenericHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	return true, 0.0
}

func (h *GenericHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Generic XML",
		Confidence: 0.3,
		Metadata:   map[string]interface{}{},
	}
}

func (h *GenericHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	names := root.UniqueLocalNames()
	return xmlmodel.SpecializedAnalysis{
		KeyFindings: map[string]interface{}{
			"element_count": root.Count(),
			"max_depth":     root.Depth(),
			"unique_tags":   len(names),
		},
		Recommendations: []string{"no specialized handler recognized this document; consider registering one"},
		DataInventory:   names,
		AIUseCases:      []string{"generic structural indexing"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"overall": 0.3},
	}, nil
}

func (h *GenericHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	return map[string]interface{}{
		"root_element":  root.Local,
		"element_count": root.Count(),
		"max_depth":     root.Depth(),
		"unique_tags":   root.UniqueLocalNames(),
	}
}
