package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const springBeansNS = "http://www.springframework.org/schema/beans"

// SpringHandler recognizes Spring Framework XML bean configuration
// (spec.md §4.4.5). Grounded on
// original_source/src/handlers/spring_config_handler.py.
type SpringHandler struct{}

func NewSpringHandler() *SpringHandler { return &SpringHandler{} }

func (h *SpringHandler) Name() string { return "spring" }

func (h *SpringHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "beans" {
		return false, 0.0
	}
	confidence := 0.0
	if root.Namespace == springBeansNS || exactNamespace(namespaces, springBeansNS) {
		confidence += 0.6
	}
	if root.Child("bean") != nil {
		confidence += 0.3
	}
	if confidence >= 0.5 {
		return true, clamp(confidence)
	}
	return false, 0.0
}

func (h *SpringHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Spring Bean Configuration",
		Confidence: 0.9,
		Metadata:   map[string]interface{}{"framework": "Spring", "category": "application_configuration"},
	}
}

func (h *SpringHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	beans := root.ChildrenNamed("bean")

	classCounts := map[string]int{}
	sensitiveProps := 0
	for _, b := range beans {
		classCounts[b.AttrOr("class", "")]++
		for _, p := range b.ChildrenNamed("property") {
			name := p.AttrOr("name", "")
			if isSensitiveKey(name) {
				if v, ok := p.Attr("value"); ok && v != "" {
					sensitiveProps++
				}
			}
		}
	}

	findings := map[string]interface{}{
		"bean_count":      len(beans),
		"unique_classes":  len(classCounts),
		"sensitive_props": sensitiveProps,
	}

	security := 1.0
	if sensitiveProps > 0 {
		security = clamp(1.0 - float64(sensitiveProps)*0.2)
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings: findings,
		Recommendations: []string{
			"Externalize sensitive bean property values to a secrets store",
			"Audit bean class inventory for deprecated or vulnerable components",
		},
		DataInventory: map[string]int{"beans": len(beans)},
		AIUseCases: []string{
			"Dependency injection graph visualization",
			"Configuration security auditing",
		},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"security": security},
	}, nil
}

func (h *SpringHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var beans []map[string]interface{}
	for _, b := range root.ChildrenNamed("bean") {
		beans = append(beans, map[string]interface{}{
			"id":    b.AttrOr("id", ""),
			"class": b.AttrOr("class", ""),
			"scope": b.AttrOr("scope", "singleton"),
		})
	}
	return map[string]interface{}{"beans": beans}
}
