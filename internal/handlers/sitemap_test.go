package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Sitemap handler:
// - Recognizes urlset and sitemapindex roots, confidence boosted by namespace
// - Analyze counts priority/lastmod coverage across url entries
// - ExtractKeyData collects loc values from both url and sitemap children

const sitemapXML = `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/a</loc><lastmod>2026-01-01</lastmod><priority>0.8</priority></url>
  <url><loc>https://example.com/b</loc></url>
</urlset>`

func TestSitemapHandler_CanHandle_RecognizesURLSetWithNamespace(t *testing.T) {
	t.Parallel()

	h := NewSitemapHandler()
	doc := mustParse(t, sitemapXML)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.Equal(t, 0.95, confidence)
}

func TestSitemapHandler_CanHandle_RejectsOtherRoots(t *testing.T) {
	t.Parallel()

	h := NewSitemapHandler()
	doc := mustParse(t, `<notasitemap/>`)

	ok, _ := h.CanHandle(doc.Root, doc.Namespaces)
	assert.False(t, ok)
}

func TestSitemapHandler_DetectType_DistinguishesIndexFromURLSet(t *testing.T) {
	t.Parallel()

	h := NewSitemapHandler()
	doc := mustParse(t, `<sitemapindex><sitemap><loc>https://example.com/sitemap1.xml</loc></sitemap></sitemapindex>`)

	typeInfo := h.DetectType(doc.Root, doc.Namespaces)
	assert.Equal(t, "sitemapindex", typeInfo.Metadata["kind"])
}

func TestSitemapHandler_Analyze_CountsPriorityAndLastmodCoverage(t *testing.T) {
	t.Parallel()

	h := NewSitemapHandler()
	doc := mustParse(t, sitemapXML)

	analysis, err := h.Analyze(doc.Root, "sitemap.xml")
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.KeyFindings["url_count"])
	assert.Equal(t, 1, analysis.KeyFindings["with_priority"])
	assert.Equal(t, 1, analysis.KeyFindings["with_lastmod"])
	assert.Equal(t, 0.5, analysis.QualityMetrics["completeness"])
}

func TestSitemapHandler_ExtractKeyData_CollectsLocations(t *testing.T) {
	t.Parallel()

	h := NewSitemapHandler()
	doc := mustParse(t, sitemapXML)

	data := h.ExtractKeyData(doc.Root)
	locs, ok := data["locations"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"https://example.com/a", "https://example.com/b"}, locs)
}
