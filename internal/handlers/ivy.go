package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// IvyHandler recognizes Apache Ivy dependency-management descriptors
// (ivy.xml), spec.md §4.4.1's build-tooling family alongside the Maven
// POM and Ant handlers.
type IvyHandler struct{}

func NewIvyHandler() *IvyHandler { return &IvyHandler{} }

func (h *IvyHandler) Name() string { return "ivy" }

func (h *IvyHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "ivy-module" {
		return false, 0.0
	}
	confidence := 0.6
	if root.Child("info") != nil {
		confidence += 0.2
	}
	if root.Descendant("dependencies") != nil {
		confidence += 0.2
	}
	return true, clamp(confidence)
}

func (h *IvyHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Ivy Module Descriptor",
		Confidence: 0.9,
		Version:    root.AttrOr("version", "2.0"),
		Metadata:   map[string]interface{}{"category": "build_dependency_management"},
	}
}

func (h *IvyHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	info := root.Child("info")
	deps := root.Descendants("dependency")
	confs := root.Descendants("conf")

	byConf := map[string]int{}
	for _, d := range deps {
		conf := d.AttrOr("conf", "default")
		byConf[conf]++
	}

	findings := map[string]interface{}{
		"organisation":     "",
		"module":           "",
		"dependency_count": len(deps),
		"configurations":   len(confs),
		"by_configuration": byConf,
	}
	if info != nil {
		findings["organisation"] = info.AttrOr("organisation", "")
		findings["module"] = info.AttrOr("module", "")
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: []string{"Pin transitive dependency revisions to avoid unexpected upgrades"},
		DataInventory:   map[string]int{"dependencies": len(deps), "configurations": len(confs)},
		AIUseCases:      []string{"Dependency graph construction", "Build reproducibility auditing"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"completeness": clamp(float64(len(deps)) / 10)},
	}, nil
}

func (h *IvyHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var deps []map[string]interface{}
	for _, d := range root.Descendants("dependency") {
		deps = append(deps, map[string]interface{}{
			"org":  d.AttrOr("org", ""),
			"name": d.AttrOr("name", ""),
			"rev":  d.AttrOr("rev", ""),
		})
	}
	return map[string]interface{}{"dependencies": deps}
}
