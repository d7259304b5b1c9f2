package handlers

import (
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const xhtmlNamespaceHint = "w3.org/1999/xhtml"

// XHTMLHandler recognizes XHTML documents (spec.md §4.4.4).
type XHTMLHandler struct{}

func NewXHTMLHandler() *XHTMLHandler { return &XHTMLHandler{} }

func (h *XHTMLHandler) Name() string { return "xhtml" }

func (h *XHTMLHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "html" {
		return false, 0.0
	}
	confidence := 0.0
	if hasNamespace(namespaces, xhtmlNamespaceHint) {
		confidence += 0.7
	}
	if root.Child("head") != nil && root.Child("body") != nil {
		confidence += 0.3
	}
	if confidence >= 0.5 {
		return true, clamp(confidence)
	}
	return false, 0.0
}

func (h *XHTMLHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "XHTML Document",
		Confidence: 0.9,
		Metadata:   map[string]interface{}{"category": "web_document"},
	}
}

func (h *XHTMLHandler) title(root *xmlparser.Node) string {
	head := root.Child("head")
	if head == nil {
		return ""
	}
	return textOf(head, "title")
}

func (h *XHTMLHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	body := root.Child("body")
	links := root.Descendants("a")
	scripts := root.Descendants("script")
	forms := root.Descendants("form")

	var externalLinks int
	for _, a := range links {
		if href, ok := a.Attr("href"); ok && (strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")) {
			externalLinks++
		}
	}

	findings := map[string]interface{}{
		"title":          h.title(root),
		"link_count":     len(links),
		"external_links": externalLinks,
		"script_count":   len(scripts),
		"form_count":     len(forms),
	}
	if body == nil {
		findings["missing_body"] = true
	}

	security := 1.0
	if len(scripts) > 0 {
		security = clamp(1.0 - float64(len(scripts))*0.05)
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Review inline scripts for injected or unexpected content"},
		DataInventory:   map[string]int{"links": len(links), "scripts": len(scripts), "forms": len(forms)},
		AIUseCases:      []string{"Content extraction and summarization", "Link graph analysis"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"security": security},
	}, nil
}

func (h *XHTMLHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	return map[string]interface{}{"title": h.title(root)}
}
