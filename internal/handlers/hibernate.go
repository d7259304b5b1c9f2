package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// HibernateHandler recognizes Hibernate ORM mapping documents
// (hibernate-mapping.xml), spec.md §4.4.5's persistence-configuration
// family alongside the Spring handler.
type HibernateHandler struct{}

func NewHibernateHandler() *HibernateHandler { return &HibernateHandler{} }

func (h *HibernateHandler) Name() string { return "hibernate" }

func (h *HibernateHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "hibernate-mapping" && root.Local != "hibernate-configuration" {
		return false, 0.0
	}
	confidence := 0.6
	if root.Descendant("class") != nil || root.Child("session-factory") != nil {
		confidence += 0.3
	}
	return true, clamp(confidence)
}

func (h *HibernateHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	kind := "mapping"
	if root.Local == "hibernate-configuration" {
		kind = "configuration"
	}
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Hibernate " + kind,
		Confidence: 0.85,
		Metadata:   map[string]interface{}{"category": "orm_mapping", "kind": kind},
	}
}

func (h *HibernateHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	classes := root.Descendants("class")
	properties := root.Descendants("property")
	sessionFactory := root.Child("session-factory")

	var connectionProps []string
	if sessionFactory != nil {
		for _, p := range sessionFactory.ChildrenNamed("property") {
			if name, ok := p.Attr("name"); ok && isSensitiveKey(name) {
				connectionProps = append(connectionProps, name)
			}
		}
	}

	findings := map[string]interface{}{
		"class_count":           len(classes),
		"property_count":        len(properties),
		"has_session_factory":   sessionFactory != nil,
		"sensitive_connection_properties": connectionProps,
	}

	security := 1.0
	if len(connectionProps) > 0 {
		security = 0.4
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Externalize datasource credentials instead of embedding them in session-factory properties"},
		DataInventory:   map[string]int{"classes": len(classes), "properties": len(properties)},
		AIUseCases:      []string{"ORM-to-schema migration planning", "Entity relationship graph extraction"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"security": security},
	}, nil
}

func (h *HibernateHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var classList []map[string]interface{}
	for _, c := range root.Descendants("class") {
		classList = append(classList, map[string]interface{}{
			"name":  c.AttrOr("name", ""),
			"table": c.AttrOr("table", ""),
		})
	}
	return map[string]interface{}{"classes": classList}
}
