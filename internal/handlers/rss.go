package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// RSSHandler recognizes RSS and Atom feed documents (spec.md §4.4.4).
// Grounded on original_source/src/handlers/rss_handler.py.
type RSSHandler struct{}

func NewRSSHandler() *RSSHandler { return &RSSHandler{} }

func (h *RSSHandler) Name() string { return "rss" }

func (h *RSSHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	switch root.Local {
	case "rss":
		return true, 1.0
	case "feed":
		return true, 0.9
	}
	return false, 0.0
}

func (h *RSSHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	version := root.AttrOr("version", "2.0")
	feedType := "Atom"
	if root.Local == "rss" {
		feedType = "RSS"
	}
	return xmlmodel.DocumentTypeInfo{
		TypeName:   feedType + " Feed",
		Confidence: 1.0,
		Version:    version,
		Metadata:   map[string]interface{}{"standard": feedType, "category": "content_syndication"},
	}
}

func (h *RSSHandler) items(root *xmlparser.Node) []*xmlparser.Node {
	if items := root.Descendants("item"); len(items) > 0 {
		return items
	}
	return root.Descendants("entry")
}

func (h *RSSHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	items := h.items(root)

	withDesc := 0
	withDate := 0
	for _, item := range items {
		if item.Descendant("description") != nil {
			withDesc++
		}
		if item.Descendant("pubDate") != nil {
			withDate++
		}
	}
	categories := h.extractCategories(items)

	findings := map[string]interface{}{
		"total_items":       len(items),
		"has_descriptions":  withDesc,
		"has_dates":         withDate,
		"categories":        categories,
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings: findings,
		Recommendations: []string{
			"Use for content aggregation and analysis",
			"Extract for trend analysis and topic modeling",
			"Monitor for content updates and changes",
		},
		DataInventory: map[string]int{
			"articles":   len(items),
			"categories": len(categories),
		},
		AIUseCases: []string{
			"Content categorization and tagging",
			"Trend detection and analysis",
			"Sentiment analysis on articles",
			"Topic modeling and clustering",
			"Content recommendation systems",
		},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics: h.assessQuality(items, withDesc, withDate),
	}, nil
}

func (h *RSSHandler) extractCategories(items []*xmlparser.Node) []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range items {
		for _, cat := range item.Descendants("category") {
			if t := cat.TextTrimmed(); t != "" && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

func (h *RSSHandler) assessQuality(items []*xmlparser.Node, withDesc, withDate int) map[string]float64 {
	total := len(items)
	if total == 0 {
		return map[string]float64{"completeness": 0, "consistency": 0, "data_density": 0}
	}
	consistency := 1.0
	if withDesc != total {
		consistency = float64(withDesc) / float64(total)
	}
	return map[string]float64{
		"completeness": float64(withDesc+withDate) / float64(2*total),
		"consistency":  consistency,
		"data_density": 0.8,
	}
}

func (h *RSSHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	items := h.items(root)
	var itemData []map[string]interface{}
	for i, item := range items {
		if i >= 10 {
			break
		}
		itemData = append(itemData, map[string]interface{}{
			"title":       textOf(item, "title"),
			"description": textOf(item, "description"),
			"pubDate":     textOf(item, "pubDate"),
			"link":        textOf(item, "link"),
		})
	}

	channel := root
	if c := root.Descendant("channel"); c != nil {
		channel = c
	}

	return map[string]interface{}{
		"feed_metadata": map[string]interface{}{
			"title":       textOf(channel, "title"),
			"description": textOf(channel, "description"),
			"link":        textOf(channel, "link"),
		},
		"items": itemData,
	}
}
