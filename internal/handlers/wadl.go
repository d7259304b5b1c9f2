package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const wadlNamespaceHint = "research.sun.com/wadl"

// WADLHandler recognizes Web Application Description Language
// documents (spec.md §4.4.2), the REST-API sibling of the SOAP/WSDL
// handlers.
type WADLHandler struct{}

func NewWADLHandler() *WADLHandler { return &WADLHandler{} }

func (h *WADLHandler) Name() string { return "wadl" }

func (h *WADLHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "application" {
		return false, 0.0
	}
	if hasNamespace(namespaces, wadlNamespaceHint) {
		return true, 0.95
	}
	if root.Descendant("resources") != nil && root.Descendant("method") != nil {
		return true, 0.5
	}
	return false, 0.0
}

func (h *WADLHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "WADL Document",
		Confidence: 0.9,
		Metadata:   map[string]interface{}{"category": "api_description"},
	}
}

func (h *WADLHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	resources := root.Descendants("resource")
	methods := root.Descendants("method")

	byVerb := map[string]int{}
	for _, m := range methods {
		verb := m.AttrOr("name", "GET")
		byVerb[verb]++
	}

	findings := map[string]interface{}{
		"resource_count": len(resources),
		"method_count":   len(methods),
		"by_http_verb":   byVerb,
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Verify each resource path declares explicit response media types"},
		DataInventory:   map[string]int{"resources": len(resources), "methods": len(methods)},
		AIUseCases:      []string{"REST API surface inventory", "OpenAPI migration from WADL"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"completeness": clamp(float64(len(resources)) / 10)},
	}, nil
}

func (h *WADLHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var resourceList []map[string]interface{}
	for _, r := range root.Descendants("resource") {
		resourceList = append(resourceList, map[string]interface{}{
			"path":    r.AttrOr("path", ""),
			"methods": len(r.ChildrenNamed("method")),
		})
	}
	return map[string]interface{}{"resources": resourceList}
}
