package handlers

import (
	"strconv"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const gpxNamespaceHint = "www.topografix.com/GPX"

// GPXHandler recognizes GPS Exchange Format documents (spec.md
// §4.4.3), the geospatial sibling of the KML handler.
type GPXHandler struct{}

func NewGPXHandler() *GPXHandler { return &GPXHandler{} }

func (h *GPXHandler) Name() string { return "gpx" }

func (h *GPXHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "gpx" {
		return false, 0.0
	}
	if hasNamespace(namespaces, gpxNamespaceHint) {
		return true, 0.95
	}
	if root.Descendant("trk") != nil || root.Descendant("wpt") != nil {
		return true, 0.6
	}
	return false, 0.0
}

func (h *GPXHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "GPX Document",
		Confidence: 0.9,
		Version:    root.AttrOr("version", "1.1"),
		Metadata:   map[string]interface{}{"category": "geospatial"},
	}
}

func (h *GPXHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	tracks := root.Descendants("trk")
	waypoints := root.Descendants("wpt")
	trackPoints := root.Descendants("trkpt")

	var elevationSum float64
	var elevationCount int
	for _, pt := range trackPoints {
		if ele := pt.Child("ele"); ele != nil {
			if v, err := strconv.ParseFloat(ele.TextTrimmed(), 64); err == nil {
				elevationSum += v
				elevationCount++
			}
		}
	}

	findings := map[string]interface{}{
		"track_count":      len(tracks),
		"waypoint_count":   len(waypoints),
		"track_point_count": len(trackPoints),
	}
	if elevationCount > 0 {
		findings["average_elevation_m"] = elevationSum / float64(elevationCount)
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Validate track continuity (no large time or distance jumps between points)"},
		DataInventory: map[string]int{
			"tracks":       len(tracks),
			"waypoints":    len(waypoints),
			"track_points": len(trackPoints),
		},
		AIUseCases:     []string{"Route summarization", "Activity classification (hiking/cycling/driving)"},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics: map[string]float64{"completeness": clamp(float64(len(trackPoints)) / 100)},
	}, nil
}

func (h *GPXHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var waypoints []map[string]interface{}
	for _, w := range root.Descendants("wpt") {
		waypoints = append(waypoints, map[string]interface{}{
			"name": textOf(w, "name"),
			"lat":  w.AttrOr("lat", ""),
			"lon":  w.AttrOr("lon", ""),
		})
	}
	return map[string]interface{}{"waypoints": waypoints}
}
