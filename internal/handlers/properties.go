package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// PropertiesHandler recognizes Java Properties-XML documents
// (java.util.Properties' DTD-based XML export), spec.md §4.4.5.
// Grounded on original_source/src/handlers/properties_xml_handler.py.
type PropertiesHandler struct{}

func NewPropertiesHandler() *PropertiesHandler { return &PropertiesHandler{} }

func (h *PropertiesHandler) Name() string { return "properties-xml" }

func (h *PropertiesHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "properties" {
		return false, 0.0
	}
	confidence := 0.4
	if len(root.ChildrenNamed("entry")) > 0 {
		confidence += 0.4
	}
	if confidence >= 0.5 {
		return true, clamp(confidence)
	}
	return false, 0.0
}

func (h *PropertiesHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Java Properties XML",
		Confidence: 0.85,
		Metadata:   map[string]interface{}{"category": "configuration"},
	}
}

func (h *PropertiesHandler) entries(root *xmlparser.Node) map[string]string {
	out := map[string]string{}
	for _, e := range root.ChildrenNamed("entry") {
		if key, ok := e.Attr("key"); ok {
			out[key] = e.TextTrimmed()
		}
	}
	return out
}

func (h *PropertiesHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	props := h.entries(root)

	byPrefix := map[string]int{}
	var sensitive []string
	for key, value := range props {
		prefix := key
		for i, c := range key {
			if c == '.' {
				prefix = key[:i]
				break
			}
		}
		byPrefix[prefix]++
		if isSensitiveKey(key) && value != "" {
			sensitive = append(sensitive, key)
		}
	}

	security := 1.0
	if len(sensitive) > 0 {
		security = clamp(1.0 - float64(len(sensitive))*0.15)
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings: map[string]interface{}{
			"total_properties": len(props),
			"by_prefix":        byPrefix,
			"sensitive_keys":   sensitive,
		},
		Recommendations: []string{
			"Move sensitive property values to a secrets manager",
			"Group properties by prefix for namespace-aware validation",
		},
		DataInventory:  map[string]int{"properties": len(props)},
		AIUseCases:     []string{"Configuration drift detection", "Secret scanning"},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics: map[string]float64{"security": security},
	}, nil
}

func (h *PropertiesHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	return map[string]interface{}{"properties": h.entries(root)}
}
