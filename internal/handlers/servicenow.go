package handlers

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

var recordTypeCaser = cases.Title(language.English)

// ServiceNowHandler recognizes ServiceNow ITSM export documents.
// Grounded on original_source/src/handlers/servicenow_handler.py.
type ServiceNowHandler struct{}

func NewServiceNowHandler() *ServiceNowHandler { return &ServiceNowHandler{} }

func (h *ServiceNowHandler) Name() string { return "servicenow" }

func (h *ServiceNowHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	score := 0.0
	if root.Local == "unload" {
		score += 0.4
	}
	if root.Descendant("incident") != nil {
		score += 0.3
	}
	if root.Descendant("sys_journal_field") != nil {
		score += 0.2
	}
	if root.Descendant("sys_attachment") != nil {
		score += 0.1
	}
	found := false
	root.Walk(func(n *xmlparser.Node) bool {
		if found {
			return false
		}
		if _, ok := n.Attr("display_value"); ok {
			score += 0.1
			found = true
		}
		return !found
	})
	if score > 0.5 {
		return true, clamp(score)
	}
	return false, 0.0
}

func (h *ServiceNowHandler) recordTypes(root *xmlparser.Node) []string {
	var types []string
	for _, child := range root.Children {
		switch child.Local {
		case "sys_journal_field", "sys_attachment", "sys_attachment_doc":
			continue
		default:
			types = append(types, child.Local)
		}
	}
	return types
}

func (h *ServiceNowHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	types := h.recordTypes(root)
	primary := "unknown"
	if len(types) > 0 {
		primary = types[0]
	}
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "ServiceNow " + recordTypeCaser.String(primary),
		Confidence: 0.95,
		Metadata: map[string]interface{}{
			"primary_record_type": primary,
			"total_records":       len(types),
			"has_journal_entries": root.Descendant("sys_journal_field") != nil,
			"has_attachments":     root.Descendant("sys_attachment") != nil,
		},
	}
}

func (h *ServiceNowHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	journals := root.Descendants("sys_journal_field")
	attachments := root.Descendants("sys_attachment")
	incidents := root.Descendants("incident")

	customFieldCount := 0
	root.Walk(func(n *xmlparser.Node) bool {
		if strings.HasPrefix(n.Local, "u_") {
			customFieldCount++
		}
		return true
	})

	findings := map[string]interface{}{
		"record_types":    h.recordTypes(root),
		"incident_count":  len(incidents),
		"journal_entries": len(journals),
		"attachments":     len(attachments),
		"custom_fields":   customFieldCount,
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Scrub customer PII from journal entries before external sharing"},
		DataInventory: map[string]int{
			"incidents":   len(incidents),
			"journals":    len(journals),
			"attachments": len(attachments),
		},
		AIUseCases:     []string{"Incident triage summarization", "SLA breach prediction", "Ticket deduplication"},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics: map[string]float64{"completeness": clamp(float64(len(h.recordTypes(root))) / 5)},
	}, nil
}

func (h *ServiceNowHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	return map[string]interface{}{"record_types": h.recordTypes(root)}
}
