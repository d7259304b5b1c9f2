package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the KML handler:
// - Recognizes a kml root carrying the OGC namespace, rejects it without one
// - variant() detects network-linked documents
// - Analyze computes a coordinate bounding box from Placemark coordinates

const kmlXML = `<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>Point A</name>
      <Point><coordinates>-122.0,37.0,0</coordinates></Point>
    </Placemark>
    <Placemark>
      <name>Point B</name>
      <Point><coordinates>-121.0,38.0,0</coordinates></Point>
    </Placemark>
  </Document>
</kml>`

func TestKMLHandler_CanHandle_RecognizesOGCNamespace(t *testing.T) {
	t.Parallel()

	h := NewKMLHandler()
	doc := mustParse(t, kmlXML)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.Equal(t, 0.95, confidence)
}

func TestKMLHandler_CanHandle_RejectsKMLRootWithoutNamespace(t *testing.T) {
	t.Parallel()

	h := NewKMLHandler()
	doc := mustParse(t, `<kml><Document/></kml>`)

	ok, _ := h.CanHandle(doc.Root, doc.Namespaces)
	assert.False(t, ok)
}

func TestKMLHandler_Variant_DetectsNetworkLinked(t *testing.T) {
	t.Parallel()

	h := NewKMLHandler()
	doc := mustParse(t, `<kml xmlns="http://www.opengis.net/kml/2.2"><NetworkLink><link/></NetworkLink></kml>`)

	typeInfo := h.DetectType(doc.Root, doc.Namespaces)
	assert.Equal(t, "network-linked", typeInfo.Metadata["variant"])
}

func TestKMLHandler_Analyze_ComputesCoordinateBounds(t *testing.T) {
	t.Parallel()

	h := NewKMLHandler()
	doc := mustParse(t, kmlXML)

	analysis, err := h.Analyze(doc.Root, "map.kml")
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.KeyFindings["placemark_count"])
	bounds, ok := analysis.KeyFindings["bounds"].(map[string]float64)
	require.True(t, ok)
	assert.Equal(t, 37.0, bounds["min_lat"])
	assert.Equal(t, 38.0, bounds["max_lat"])
	assert.Equal(t, -122.0, bounds["min_lon"])
	assert.Equal(t, -121.0, bounds["max_lon"])
}

func TestKMLHandler_ExtractKeyData_ListsPlacemarks(t *testing.T) {
	t.Parallel()

	h := NewKMLHandler()
	doc := mustParse(t, kmlXML)

	data := h.ExtractKeyData(doc.Root)
	placemarks, ok := data["placemarks"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, placemarks, 2)
	assert.Equal(t, "Point A", placemarks[0]["name"])
}
