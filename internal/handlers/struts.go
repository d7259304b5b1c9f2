package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// StrutsHandler recognizes Apache Struts struts-config/struts.xml
// action-mapping documents (spec.md §4.4.5).
type StrutsHandler struct{}

func NewStrutsHandler() *StrutsHandler { return &StrutsHandler{} }

func (h *StrutsHandler) Name() string { return "struts" }

func (h *StrutsHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "struts-config" && root.Local != "struts" {
		return false, 0.0
	}
	confidence := 0.5
	if root.Descendant("action-mappings") != nil || root.Descendant("action") != nil {
		confidence += 0.3
	}
	if root.Descendant("package") != nil {
		confidence += 0.1
	}
	return true, clamp(confidence)
}

func (h *StrutsHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	generation := "1.x"
	if root.Local == "struts" {
		generation = "2.x"
	}
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Struts Configuration",
		Confidence: 0.85,
		Metadata:   map[string]interface{}{"category": "web_framework_configuration", "generation": generation},
	}
}

func (h *StrutsHandler) actions(root *xmlparser.Node) []*xmlparser.Node {
	var out []*xmlparser.Node
	out = append(out, root.Descendants("action")...)
	return out
}

func (h *StrutsHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	actions := h.actions(root)
	formBeans := root.Descendants("form-bean")
	forwards := root.Descendants("forward")

	var unvalidated []string
	for _, a := range actions {
		if validate, ok := a.Attr("validate"); ok && validate == "false" {
			path := a.AttrOr("path", a.AttrOr("name", ""))
			unvalidated = append(unvalidated, path)
		}
	}

	findings := map[string]interface{}{
		"action_count":      len(actions),
		"form_bean_count":   len(formBeans),
		"forward_count":     len(forwards),
		"unvalidated_paths": unvalidated,
	}

	security := 1.0
	if len(unvalidated) > 0 {
		security = clamp(1.0 - float64(len(unvalidated))*0.1)
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Enable input validation on all actions exposed to untrusted clients"},
		DataInventory:   map[string]int{"actions": len(actions), "form_beans": len(formBeans)},
		AIUseCases:      []string{"Legacy MVC migration planning", "Attack-surface mapping of exposed actions"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"security": security},
	}, nil
}

func (h *StrutsHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var actionList []map[string]interface{}
	for _, a := range h.actions(root) {
		actionList = append(actionList, map[string]interface{}{
			"path": a.AttrOr("path", ""),
			"type": a.AttrOr("type", a.AttrOr("class", "")),
		})
	}
	return map[string]interface{}{"actions": actionList}
}
