package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const svgNamespaceHint = "w3.org/2000/svg"

// SVGHandler recognizes Scalable Vector Graphics documents (spec.md
// §4.4.3).
type SVGHandler struct{}

func NewSVGHandler() *SVGHandler { return &SVGHandler{} }

func (h *SVGHandler) Name() string { return "svg" }

func (h *SVGHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "svg" {
		return false, 0.0
	}
	if hasNamespace(namespaces, svgNamespaceHint) {
		return true, 0.95
	}
	if root.AttrOr("viewBox", "") != "" {
		return true, 0.5
	}
	return false, 0.0
}

func (h *SVGHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "SVG Document",
		Confidence: 0.9,
		Version:    root.AttrOr("version", "1.1"),
		Metadata:   map[string]interface{}{"category": "vector_graphics"},
	}
}

func (h *SVGHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	scripts := root.Descendants("script")
	foreignObjects := root.Descendants("foreignObject")
	shapes := 0
	for _, name := range []string{"path", "rect", "circle", "ellipse", "polygon", "polyline", "line"} {
		shapes += len(root.Descendants(name))
	}

	findings := map[string]interface{}{
		"shape_count":          shapes,
		"script_count":         len(scripts),
		"foreign_object_count": len(foreignObjects),
		"width":                root.AttrOr("width", ""),
		"height":               root.AttrOr("height", ""),
	}

	security := 1.0
	if len(scripts) > 0 || len(foreignObjects) > 0 {
		security = 0.3
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Strip embedded <script>/<foreignObject> content before rendering untrusted SVG"},
		DataInventory:   map[string]int{"shapes": shapes},
		AIUseCases:      []string{"Icon/diagram classification", "Untrusted SVG sanitization pipelines"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"security": security},
	}, nil
}

func (h *SVGHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	return map[string]interface{}{
		"has_script":         root.Descendant("script") != nil,
		"has_foreign_object": root.Descendant("foreignObject") != nil,
	}
}
