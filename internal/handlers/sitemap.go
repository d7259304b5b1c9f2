package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const sitemapNamespaceHint = "sitemaps.org/schemas/sitemap"

// SitemapHandler recognizes sitemaps.org XML sitemap and
// sitemap-index documents (spec.md §4.4.3).
type SitemapHandler struct{}

func NewSitemapHandler() *SitemapHandler { return &SitemapHandler{} }

func (h *SitemapHandler) Name() string { return "sitemap" }

func (h *SitemapHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "urlset" && root.Local != "sitemapindex" {
		return false, 0.0
	}
	if hasNamespace(namespaces, sitemapNamespaceHint) {
		return true, 0.95
	}
	return true, 0.5
}

func (h *SitemapHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	kind := "urlset"
	if root.Local == "sitemapindex" {
		kind = "sitemapindex"
	}
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "XML Sitemap (" + kind + ")",
		Confidence: 0.9,
		Metadata:   map[string]interface{}{"category": "seo_metadata", "kind": kind},
	}
}

func (h *SitemapHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	urls := root.ChildrenNamed("url")
	sitemaps := root.ChildrenNamed("sitemap")

	var priorities int
	var lastmods int
	for _, u := range urls {
		if u.Child("priority") != nil {
			priorities++
		}
		if u.Child("lastmod") != nil {
			lastmods++
		}
	}

	findings := map[string]interface{}{
		"url_count":      len(urls),
		"sitemap_count":  len(sitemaps),
		"with_priority":  priorities,
		"with_lastmod":   lastmods,
	}

	completeness := 0.0
	if len(urls) > 0 {
		completeness = float64(lastmods) / float64(len(urls))
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Ensure lastmod dates are kept current for effective crawl prioritization"},
		DataInventory:   map[string]int{"urls": len(urls), "child_sitemaps": len(sitemaps)},
		AIUseCases:      []string{"Crawl budget planning", "Site structure discovery"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"completeness": clamp(completeness)},
	}, nil
}

func (h *SitemapHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var locs []string
	for _, u := range root.ChildrenNamed("url") {
		locs = append(locs, textOf(u, "loc"))
	}
	for _, s := range root.ChildrenNamed("sitemap") {
		locs = append(locs, textOf(s, "loc"))
	}
	return map[string]interface{}{"locations": locs}
}
