package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/graphutil"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const graphmlNamespaceHint = "graphml.graphdrawing.org"

// GraphMLHandler recognizes GraphML graph-description documents
// (spec.md §4.4.3). Grounded on
// original_source/src/handlers/graphml_handler.py.
type GraphMLHandler struct{}

func NewGraphMLHandler() *GraphMLHandler { return &GraphMLHandler{} }

func (h *GraphMLHandler) Name() string { return "graphml" }

func (h *GraphMLHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "graphml" {
		return false, 0.0
	}
	if hasNamespace(namespaces, graphmlNamespaceHint) {
		return true, 0.95
	}
	return false, 0.0
}

func (h *GraphMLHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	graph := root.Child("graph")
	directed := "undirected"
	if graph != nil && graph.AttrOr("edgedefault", "undirected") == "directed" {
		directed = "directed"
	}
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "GraphML Document",
		Confidence: 0.95,
		Metadata:   map[string]interface{}{"category": "graph_data", "edgedefault": directed},
	}
}

func (h *GraphMLHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	nodes := root.Descendants("node")
	edges := root.Descendants("edge")

	density := 0.0
	n := float64(len(nodes))
	if n > 1 {
		density = float64(len(edges)) / (n * (n - 1))
	}

	graphType := "sparse"
	if len(nodes) > 0 && float64(len(edges))/float64(len(nodes)) > 2 {
		graphType = "dense"
	}

	findings := map[string]interface{}{
		"node_count":  len(nodes),
		"edge_count":  len(edges),
		"density":     density,
		"graph_type":  graphType,
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Check for dangling edges referencing missing node ids"},
		DataInventory:   map[string]int{"nodes": len(nodes), "edges": len(edges)},
		AIUseCases:      []string{"Graph embedding and clustering", "Dependency/reference graph analysis"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"reference_integrity": h.referenceIntegrity(nodes, edges)},
	}, nil
}

func (h *GraphMLHandler) referenceIntegrity(nodes, edges []*xmlparser.Node) float64 {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if id, ok := n.Attr("id"); ok {
			ids = append(ids, id)
		}
	}

	refs := make([]graphutil.Reference, 0, len(edges))
	for _, e := range edges {
		src, _ := e.Attr("source")
		tgt, _ := e.Attr("target")
		refs = append(refs, graphutil.Reference{From: src, To: tgt})
	}

	return graphutil.CheckIntegrity(ids, refs).Score()
}

func (h *GraphMLHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var edgeList []map[string]interface{}
	for _, e := range root.Descendants("edge") {
		edgeList = append(edgeList, map[string]interface{}{
			"source": e.AttrOr("source", ""),
			"target": e.AttrOr("target", ""),
		})
	}
	return map[string]interface{}{"edges": edgeList}
}
