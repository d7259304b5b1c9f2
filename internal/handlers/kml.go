package handlers

import (
	"strconv"
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const kmlNamespaceHint = "opengis.net/kml"

// KMLHandler recognizes Keyhole Markup Language documents (spec.md
// §4.4.3). Grounded on original_source/src/handlers/kml_handler.py.
type KMLHandler struct{}

func NewKMLHandler() *KMLHandler { return &KMLHandler{} }

func (h *KMLHandler) Name() string { return "kml" }

func (h *KMLHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "kml" {
		return false, 0.0
	}
	if hasNamespace(namespaces, kmlNamespaceHint) || strings.Contains(root.Namespace, kmlNamespaceHint) {
		return true, 0.95
	}
	return false, 0.0
}

func (h *KMLHandler) variant(root *xmlparser.Node) string {
	switch {
	case root.Descendant("gx:Tour") != nil || root.Descendant("Tour") != nil:
		return "google-earth-tour"
	case root.Descendant("NetworkLink") != nil:
		return "network-linked"
	default:
		return "standard"
	}
}

func (h *KMLHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "KML Document",
		Confidence: 0.95,
		Metadata:   map[string]interface{}{"category": "geospatial", "variant": h.variant(root)},
	}
}

func (h *KMLHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	placemarks := root.Descendants("Placemark")
	minLat, maxLat, minLon, maxLon, haveBounds := h.coordinateBounds(placemarks)

	findings := map[string]interface{}{
		"placemark_count": len(placemarks),
		"network_links":   len(root.Descendants("NetworkLink")),
		"variant":         h.variant(root),
	}
	if haveBounds {
		findings["bounds"] = map[string]float64{"min_lat": minLat, "max_lat": maxLat, "min_lon": minLon, "max_lon": maxLon}
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Validate coordinate bounds against expected operational area"},
		DataInventory:   map[string]int{"placemarks": len(placemarks)},
		AIUseCases:      []string{"Geospatial feature extraction", "Route and area-of-interest analysis"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"completeness": clamp(float64(len(placemarks)) / 10)},
	}, nil
}

func (h *KMLHandler) coordinateBounds(placemarks []*xmlparser.Node) (minLat, maxLat, minLon, maxLon float64, ok bool) {
	first := true
	for _, p := range placemarks {
		coords := p.Descendant("coordinates")
		if coords == nil {
			continue
		}
		for _, tuple := range strings.Fields(coords.TextTrimmed()) {
			parts := strings.Split(tuple, ",")
			if len(parts) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(parts[0], 64)
			lat, err2 := strconv.ParseFloat(parts[1], 64)
			if err1 != nil || err2 != nil {
				continue
			}
			if first {
				minLat, maxLat, minLon, maxLon = lat, lat, lon, lon
				first = false
				ok = true
				continue
			}
			if lat < minLat {
				minLat = lat
			}
			if lat > maxLat {
				maxLat = lat
			}
			if lon < minLon {
				minLon = lon
			}
			if lon > maxLon {
				maxLon = lon
			}
		}
	}
	return
}

func (h *KMLHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var placemarks []map[string]interface{}
	for _, p := range root.Descendants("Placemark") {
		placemarks = append(placemarks, map[string]interface{}{
			"name":        textOf(p, "name"),
			"description": textOf(p, "description"),
		})
	}
	return map[string]interface{}{"placemarks": placemarks}
}
