package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const docbookNamespaceHint = "docbook.org/ns/docbook"

var docbookRootElements = map[string]bool{"book": true, "article": true, "chapter": true, "section": true}

// DocBookHandler recognizes DocBook technical-document markup (spec.md
// §4.4.4).
type DocBookHandler struct{}

func NewDocBookHandler() *DocBookHandler { return &DocBookHandler{} }

func (h *DocBookHandler) Name() string { return "docbook" }

func (h *DocBookHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if !docbookRootElements[root.Local] {
		return false, 0.0
	}
	confidence := 0.0
	if hasNamespace(namespaces, docbookNamespaceHint) || root.Namespace == "http://"+docbookNamespaceHint {
		confidence += 0.6
	}
	if root.Descendant("chapter") != nil || root.Descendant("section") != nil {
		confidence += 0.3
	}
	if root.Child("info") != nil || root.Child("title") != nil {
		confidence += 0.1
	}
	if confidence >= 0.5 {
		return true, clamp(confidence)
	}
	return false, 0.0
}

func (h *DocBookHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "DocBook " + root.Local,
		Confidence: 0.9,
		Version:    root.AttrOr("version", "5.0"),
		Metadata:   map[string]interface{}{"category": "technical_documentation"},
	}
}

func (h *DocBookHandler) outline(root *xmlparser.Node) []map[string]interface{} {
	var out []map[string]interface{}
	for _, sec := range append(root.Descendants("chapter"), root.Descendants("section")...) {
		out = append(out, map[string]interface{}{
			"kind":  sec.Local,
			"title": textOf(sec, "title"),
		})
	}
	return out
}

func (h *DocBookHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	outline := h.outline(root)
	xrefs := root.Descendants("xref")
	ids := map[string]bool{}
	root.Walk(func(n *xmlparser.Node) bool {
		if id, ok := n.Attr("id"); ok {
			ids[id] = true
		}
		return true
	})
	danglingCount := 0
	for _, x := range xrefs {
		if linkend, ok := x.Attr("linkend"); ok && !ids[linkend] {
			danglingCount++
		}
	}
	referenceIntegrity := 1.0
	if len(xrefs) > 0 {
		referenceIntegrity = 1.0 - float64(danglingCount)/float64(len(xrefs))
	}

	hasTitle := root.Child("title") != nil || (root.Child("info") != nil && root.Child("info").Child("title") != nil)
	completeness := 0.0
	if hasTitle {
		completeness += 0.5
	}
	if root.Child("info") != nil {
		completeness += 0.5
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings: map[string]interface{}{
			"outline":       outline,
			"cross_references": len(xrefs),
			"dangling_refs":    danglingCount,
		},
		Recommendations: []string{"Fix dangling xref/linkend targets before publishing"},
		DataInventory:   map[string]int{"sections": len(outline), "xrefs": len(xrefs)},
		AIUseCases:      []string{"Documentation search indexing", "Structural summarization"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics: map[string]float64{
			"completeness":        clamp(completeness),
			"reference_integrity": clamp(referenceIntegrity),
		},
	}, nil
}

func (h *DocBookHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	return map[string]interface{}{"outline": h.outline(root)}
}
