package handlers

import (
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

var xliffNamespaces = []string{
	"urn:oasis:names:tc:xliff:document:1.2",
	"urn:oasis:names:tc:xliff:document:2.0",
	"urn:oasis:names:tc:xliff:document:2.1",
	"xliff.oasis-open.org",
}

// XLIFFHandler recognizes XLIFF localization/translation interchange
// files. Grounded on original_source/src/handlers/xliff_handler.py.
type XLIFFHandler struct{}

func NewXLIFFHandler() *XLIFFHandler { return &XLIFFHandler{} }

func (h *XLIFFHandler) Name() string { return "xliff" }

func (h *XLIFFHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	for _, uri := range namespaces {
		for _, xliffNS := range xliffNamespaces {
			if strings.Contains(uri, xliffNS) {
				return true, 1.0
			}
		}
	}
	if strings.EqualFold(root.Local, "xliff") {
		return true, 0.95
	}
	found := 0
	for _, name := range []string{"file", "trans-unit", "source", "target", "body"} {
		if root.Descendant(name) != nil {
			found++
		}
	}
	if found >= 3 {
		conf := float64(found) * 0.25
		if conf > 0.9 {
			conf = 0.9
		}
		return true, conf
	}
	units := root.Descendants("trans-unit")
	for _, u := range units[:min(len(units), 5)] {
		if u.Child("source") != nil && u.Child("target") != nil {
			return true, 0.8
		}
	}
	return false, 0.0
}

func (h *XLIFFHandler) version(root *xmlparser.Node, namespaces map[string]string) string {
	if v, ok := root.Attr("version"); ok {
		return v
	}
	version := "1.2"
	for _, uri := range namespaces {
		switch {
		case strings.Contains(uri, "2.1"):
			version = "2.1"
		case strings.Contains(uri, "2.0"):
			version = "2.0"
		case strings.Contains(uri, "1.2"):
			version = "1.2"
		}
	}
	return version
}

func (h *XLIFFHandler) workflowState(units []*xmlparser.Node) string {
	state := "new"
	var states []string
	for _, u := range units {
		if s, ok := u.Attr("state"); ok && s != "" {
			states = append(states, s)
		}
	}
	for _, s := range states {
		if s == "final" || s == "signed-off" {
			return "final"
		}
	}
	for _, s := range states {
		if s == "translated" || s == "reviewed" {
			return "in_progress"
		}
	}
	for _, s := range states {
		if s == "needs-translation" {
			return "pending"
		}
	}
	return state
}

func (h *XLIFFHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	units := root.Descendants("trans-unit")
	files := root.Descendants("file")

	docType := "standard"
	switch {
	case len(files) > 1:
		docType = "multi_file"
	default:
		for _, u := range units {
			if a, _ := u.Attr("approved"); a == "yes" {
				docType = "approved_translation"
				break
			}
			if t, _ := u.Attr("translate"); t == "no" {
				docType = "mixed_translation"
				break
			}
		}
	}

	complexity := "simple"
	if len(units) >= 1000 {
		complexity = "complex"
	} else if len(units) >= 100 {
		complexity = "medium"
	}

	return xmlmodel.DocumentTypeInfo{
		TypeName:   "XLIFF Translation",
		Confidence: 0.95,
		Version:    h.version(root, namespaces),
		Metadata: map[string]interface{}{
			"standard":           "XLIFF",
			"category":           "localization",
			"document_type":      docType,
			"complexity":         complexity,
			"workflow_state":     h.workflowState(units),
			"translation_units":  len(units),
			"file_count":         len(files),
		},
	}
}

func (h *XLIFFHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	units := root.Descendants("trans-unit")
	files := root.Descendants("file")

	sourceLang := ""
	if f := root.Descendant("file"); f != nil {
		sourceLang = f.AttrOr("source-language", "")
	}
	targetLangs := map[string]bool{}
	for _, f := range files {
		if tl := f.AttrOr("target-language", ""); tl != "" {
			targetLangs[tl] = true
		}
	}

	translated := 0
	untranslated := 0
	for _, u := range units {
		target := u.Child("target")
		if target != nil && target.TextTrimmed() != "" {
			translated++
		} else {
			untranslated++
		}
	}
	completionRate := 0.0
	if len(units) > 0 {
		completionRate = float64(translated) / float64(len(units))
	}

	findings := map[string]interface{}{
		"file_count":       len(files),
		"unit_count":       len(units),
		"source_language":  sourceLang,
		"target_languages": len(targetLangs),
		"translated_count": translated,
		"untranslated_count": untranslated,
		"completion_rate":  completionRate,
		"workflow_state":   h.workflowState(units),
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings: findings,
		Recommendations: []string{
			"Review untranslated and fuzzy segments",
			"Validate translation completeness and consistency across target languages",
		},
		DataInventory: map[string]int{
			"files":              len(files),
			"translation_units":  len(units),
			"translated_units":   translated,
			"untranslated_units": untranslated,
		},
		AIUseCases: []string{
			"Automated translation quality assessment",
			"Machine translation post-editing workflows",
			"Translation memory optimization",
		},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics: map[string]float64{
			"completion_rate": clamp(completionRate),
		},
	}, nil
}

func (h *XLIFFHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var catalog []map[string]interface{}
	for _, u := range root.Descendants("trans-unit") {
		catalog = append(catalog, map[string]interface{}{
			"id":     u.AttrOr("id", ""),
			"source": textOf(u, "source"),
			"target": textOf(u, "target"),
			"state":  u.AttrOr("state", ""),
		})
	}
	return map[string]interface{}{"translation_catalog": catalog}
}
