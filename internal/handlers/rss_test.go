package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the RSS/Atom handler:
// - Recognizes both rss and feed root elements at different confidences
// - Analyze counts items and collects unique categories
// - ExtractKeyData reports channel metadata alongside a capped item list

const rssXML = `<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <description>An example feed</description>
    <link>https://example.com</link>
    <item>
      <title>First post</title>
      <description>First post body</description>
      <pubDate>Mon, 01 Jan 2026 00:00:00 GMT</pubDate>
      <category>go</category>
    </item>
    <item>
      <title>Second post</title>
      <category>go</category>
      <category>xml</category>
    </item>
  </channel>
</rss>`

func TestRSSHandler_CanHandle_RecognizesRSSAndAtom(t *testing.T) {
	t.Parallel()

	h := NewRSSHandler()

	rssDoc := mustParse(t, `<rss version="2.0"><channel/></rss>`)
	ok, confidence := h.CanHandle(rssDoc.Root, rssDoc.Namespaces)
	require.True(t, ok)
	assert.Equal(t, 1.0, confidence)

	atomDoc := mustParse(t, `<feed/>`)
	ok, confidence = h.CanHandle(atomDoc.Root, atomDoc.Namespaces)
	require.True(t, ok)
	assert.Equal(t, 0.9, confidence)
}

func TestRSSHandler_Analyze_CountsItemsAndCategories(t *testing.T) {
	t.Parallel()

	h := NewRSSHandler()
	doc := mustParse(t, rssXML)

	analysis, err := h.Analyze(doc.Root, "feed.xml")
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.KeyFindings["total_items"])
	assert.Equal(t, 1, analysis.KeyFindings["has_descriptions"])
	assert.Equal(t, 1, analysis.KeyFindings["has_dates"])

	categories, ok := analysis.KeyFindings["categories"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"go", "xml"}, categories)
}

func TestRSSHandler_ExtractKeyData_ReportsFeedMetadataAndItems(t *testing.T) {
	t.Parallel()

	h := NewRSSHandler()
	doc := mustParse(t, rssXML)

	data := h.ExtractKeyData(doc.Root)
	metadata, ok := data["feed_metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Example Feed", metadata["title"])

	items, ok := data["items"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "First post", items[0]["title"])
}

func TestRSSHandler_AssessQuality_ZeroItemsYieldsZeroScores(t *testing.T) {
	t.Parallel()

	h := NewRSSHandler()
	doc := mustParse(t, `<rss version="2.0"><channel/></rss>`)

	analysis, err := h.Analyze(doc.Root, "empty.xml")
	require.NoError(t, err)
	assert.Equal(t, 0.0, analysis.QualityMetrics["completeness"])
	assert.Equal(t, 0.0, analysis.QualityMetrics["data_density"])
}
