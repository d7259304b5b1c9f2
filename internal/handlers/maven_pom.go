package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// MavenPOMHandler recognizes Maven Project Object Model files (spec.md
// §4.4.2). Grounded on
// original_source/src/handlers/maven_pom_handler.py.
type MavenPOMHandler struct{}

func NewMavenPOMHandler() *MavenPOMHandler { return &MavenPOMHandler{} }

func (h *MavenPOMHandler) Name() string { return "maven-pom" }

func (h *MavenPOMHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "project" {
		return false, 0.0
	}
	if hasNamespace(namespaces, "maven.apache.org") {
		return true, 1.0
	}
	if root.Descendant("groupId") != nil && root.Descendant("artifactId") != nil {
		return true, 0.8
	}
	return false, 0.0
}

func (h *MavenPOMHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	version := "4.0.0"
	if mv := root.Child("modelVersion"); mv != nil {
		version = mv.TextTrimmed()
	}
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Maven POM",
		Confidence: 1.0,
		Version:    version,
		SchemaURI:  "http://maven.apache.org/POM/4.0.0",
		Metadata:   map[string]interface{}{"build_tool": "Maven", "category": "build_configuration"},
	}
}

func (h *MavenPOMHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	deps := h.analyzeDependencies(root)
	plugins := h.analyzePlugins(root)
	properties := h.extractProperties(root)

	findings := map[string]interface{}{
		"project_info": h.extractProjectInfo(root),
		"dependencies": deps,
		"plugins":      plugins,
		"repositories": h.extractRepositories(root),
		"properties":   properties,
	}

	allDeps, _ := deps["all"].([]map[string]interface{})

	return xmlmodel.SpecializedAnalysis{
		KeyFindings: findings,
		Recommendations: []string{
			"Analyze dependency tree for security vulnerabilities",
			"Check for outdated dependencies",
			"Extract for software composition analysis",
			"Monitor for license compliance",
		},
		DataInventory: map[string]int{
			"dependencies": len(allDeps),
			"plugins":      len(plugins),
			"properties":   len(properties),
		},
		AIUseCases: []string{
			"Dependency vulnerability detection",
			"License compliance checking",
			"Technical debt analysis",
			"Build optimization recommendations",
			"Dependency update suggestions",
		},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics: h.assessQuality(findings),
	}, nil
}

func (h *MavenPOMHandler) extractProjectInfo(root *xmlparser.Node) map[string]interface{} {
	return map[string]interface{}{
		"name":        textOf(root, "name"),
		"description": textOf(root, "description"),
		"url":         textOf(root, "url"),
		"parent":      h.extractParentInfo(root),
	}
}

func (h *MavenPOMHandler) extractParentInfo(root *xmlparser.Node) interface{} {
	parent := root.Child("parent")
	if parent == nil {
		return nil
	}
	return map[string]interface{}{
		"groupId":    textOf(parent, "groupId"),
		"artifactId": textOf(parent, "artifactId"),
		"version":    textOf(parent, "version"),
	}
}

func (h *MavenPOMHandler) extractDependency(dep *xmlparser.Node) map[string]interface{} {
	scope := textOf(dep, "scope")
	if scope == "" {
		scope = "compile"
	}
	return map[string]interface{}{
		"groupId":    textOf(dep, "groupId"),
		"artifactId": textOf(dep, "artifactId"),
		"version":    textOf(dep, "version"),
		"scope":      scope,
	}
}

func (h *MavenPOMHandler) analyzeDependencies(root *xmlparser.Node) map[string]interface{} {
	deps := root.Descendants("dependency")

	scopes := map[string]int{}
	var all []map[string]interface{}
	for _, d := range deps {
		dep := h.extractDependency(d)
		all = append(all, dep)
		scope := dep["scope"].(string)
		scopes[scope]++
	}

	management := 0
	if mgmt := root.Descendant("dependencyManagement"); mgmt != nil {
		management = len(mgmt.Descendants("dependency"))
	}

	return map[string]interface{}{
		"all":        all,
		"count":      len(deps),
		"by_scope":   scopes,
		"management": management,
	}
}

func (h *MavenPOMHandler) analyzePlugins(root *xmlparser.Node) []map[string]interface{} {
	var plugins []map[string]interface{}
	for _, p := range root.Descendants("plugin") {
		groupID := textOf(p, "groupId")
		if groupID == "" {
			groupID = "org.apache.maven.plugins"
		}
		plugins = append(plugins, map[string]interface{}{
			"groupId":    groupID,
			"artifactId": textOf(p, "artifactId"),
			"version":    textOf(p, "version"),
		})
	}
	return plugins
}

func (h *MavenPOMHandler) extractRepositories(root *xmlparser.Node) []map[string]interface{} {
	var repos []map[string]interface{}
	for _, r := range root.Descendants("repository") {
		repos = append(repos, map[string]interface{}{
			"id":  textOf(r, "id"),
			"url": textOf(r, "url"),
		})
	}
	return repos
}

func (h *MavenPOMHandler) extractProperties(root *xmlparser.Node) map[string]string {
	props := map[string]string{}
	if properties := root.Child("properties"); properties != nil {
		for _, p := range properties.Children {
			props[p.Local] = p.TextTrimmed()
		}
	}
	return props
}

func (h *MavenPOMHandler) extractBuildConfig(root *xmlparser.Node) map[string]interface{} {
	build := root.Descendant("build")
	if build == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"sourceDirectory": textOf(build, "sourceDirectory"),
		"outputDirectory": textOf(build, "outputDirectory"),
		"finalName":       textOf(build, "finalName"),
	}
}

func (h *MavenPOMHandler) assessQuality(findings map[string]interface{}) map[string]float64 {
	projectInfo := findings["project_info"].(map[string]interface{})
	deps := findings["dependencies"].(map[string]interface{})
	allDeps, _ := deps["all"].([]map[string]interface{})

	hasDescription := 0.0
	if d, _ := projectInfo["description"].(string); d != "" {
		hasDescription = 1.0
	}
	hasURL := 0.0
	if u, _ := projectInfo["url"].(string); u != "" {
		hasURL = 1.0
	}

	depsWithVersion := 0
	for _, d := range allDeps {
		if v, _ := d["version"].(string); v != "" {
			depsWithVersion++
		}
	}

	depMgmtScore := 1.0
	if len(allDeps) > 0 {
		depMgmtScore = float64(depsWithVersion) / float64(len(allDeps))
	}

	management, _ := deps["management"].(int)
	bestPractices := 0.4
	if management > 0 {
		bestPractices = 0.8
	}

	return map[string]float64{
		"completeness":          (hasDescription + hasURL) / 2,
		"dependency_management": depMgmtScore,
		"best_practices":        bestPractices,
	}
}

func (h *MavenPOMHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	packaging := textOf(root, "packaging")
	if packaging == "" {
		packaging = "jar"
	}

	var depList []map[string]interface{}
	deps := root.Descendants("dependency")
	for i, d := range deps {
		if i >= 20 {
			break
		}
		depList = append(depList, h.extractDependency(d))
	}

	return map[string]interface{}{
		"coordinates": map[string]interface{}{
			"groupId":    textOf(root, "groupId"),
			"artifactId": textOf(root, "artifactId"),
			"version":    textOf(root, "version"),
			"packaging":  packaging,
		},
		"dependencies": depList,
		"build_config": h.extractBuildConfig(root),
	}
}
