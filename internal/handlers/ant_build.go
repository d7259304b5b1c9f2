package handlers

import (
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// AntBuildHandler recognizes Apache Ant build.xml files (spec.md
// §4.4.2). Grounded on
// original_source/src/handlers/ant_build_handler.py.
type AntBuildHandler struct{}

func NewAntBuildHandler() *AntBuildHandler { return &AntBuildHandler{} }

func (h *AntBuildHandler) Name() string { return "ant-build" }

func (h *AntBuildHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "project" {
		return false, 0.0
	}
	confidence := 0.0
	if _, ok := root.Attr("name"); ok {
		confidence += 0.3
	}
	if _, ok := root.Attr("default"); ok {
		confidence += 0.3
	}
	if _, ok := root.Attr("basedir"); ok {
		confidence += 0.2
	}

	found := 0
	for _, elem := range []string{"target", "property", "taskdef", "path", "fileset"} {
		if root.Descendant(elem) != nil {
			found++
		}
	}
	bonus := float64(found) * 0.1
	if bonus > 0.4 {
		bonus = 0.4
	}
	confidence += bonus

	if hasNamespace(namespaces, "antlib") {
		confidence += 0.2
	}

	if confidence >= 0.5 {
		return true, clamp(confidence)
	}
	return false, 0.0
}

func (h *AntBuildHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	projectName := root.AttrOr("name", "unknown")
	defaultTarget := root.AttrOr("default", "none")

	metadata := map[string]interface{}{
		"build_tool":      "Apache Ant",
		"category":        "build_configuration",
		"project_name":    projectName,
		"default_target":  defaultTarget,
	}
	if hasNamespace(namespaces, "ivy") {
		metadata["dependency_manager"] = "Apache Ivy"
	}

	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Apache Ant Build",
		Confidence: 0.95,
		Metadata:   metadata,
	}
}

func (h *AntBuildHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	targets := h.analyzeTargets(root)
	properties := h.extractProperties(root)
	paths := root.Descendants("path")
	filesets := root.Descendants("fileset")
	deps := h.analyzeDependencies(root)
	tasks := h.analyzeTasks(root)

	findings := map[string]interface{}{
		"project_info": map[string]interface{}{
			"name":     root.AttrOr("name", "unknown"),
			"default":  root.AttrOr("default", "none"),
			"basedir":  root.AttrOr("basedir", ""),
		},
		"targets":       targets,
		"properties":    properties,
		"paths":         len(paths),
		"filesets":      len(filesets),
		"dependencies":  deps,
		"tasks":         tasks,
		"build_metrics": h.buildMetrics(root, targets, deps),
	}

	depCount, _ := deps["total_count"].(int)
	taskCount, _ := tasks["total_count"].(int)

	return xmlmodel.SpecializedAnalysis{
		KeyFindings: findings,
		Recommendations: []string{
			"Analyze target dependencies for build optimization",
			"Check for hardcoded paths and credentials",
			"Extract for CI/CD pipeline configuration",
			"Review build performance and parallelization opportunities",
			"Validate property management and externalization",
			"Assess dependency management strategy",
		},
		DataInventory: map[string]int{
			"targets":      len(targets),
			"properties":   len(properties),
			"paths":        len(paths),
			"filesets":     len(filesets),
			"dependencies": depCount,
			"tasks":        taskCount,
		},
		AIUseCases: []string{
			"Build optimization recommendations",
			"CI/CD pipeline generation",
			"Dependency vulnerability scanning",
			"Build performance analysis",
			"Configuration management automation",
			"Technical debt assessment",
			"Build reproducibility analysis",
			"Security scanning of build scripts",
		},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics: h.assessQuality(findings, targets, deps),
	}, nil
}

func (h *AntBuildHandler) analyzeTargets(root *xmlparser.Node) []map[string]interface{} {
	var targets []map[string]interface{}
	for _, t := range root.ChildrenNamed("target") {
		depends := t.AttrOr("depends", "")
		var dependsOn []string
		if depends != "" {
			for _, d := range strings.Split(depends, ",") {
				dependsOn = append(dependsOn, strings.TrimSpace(d))
			}
		}
		targets = append(targets, map[string]interface{}{
			"name":        t.AttrOr("name", ""),
			"depends":     dependsOn,
			"description": t.AttrOr("description", ""),
			"if":          t.AttrOr("if", ""),
			"unless":      t.AttrOr("unless", ""),
			"task_count":  len(t.Children),
		})
	}
	return targets
}

func (h *AntBuildHandler) extractProperties(root *xmlparser.Node) map[string]string {
	props := map[string]string{}
	for _, p := range root.Descendants("property") {
		if name, ok := p.Attr("name"); ok {
			props[name] = p.AttrOr("value", "")
		}
	}
	return props
}

func (h *AntBuildHandler) analyzeDependencies(root *xmlparser.Node) map[string]interface{} {
	ivyDeps := root.Descendants("dependency")
	return map[string]interface{}{
		"total_count": len(ivyDeps),
		"ivy":         len(ivyDeps) > 0,
	}
}

func (h *AntBuildHandler) analyzeTasks(root *xmlparser.Node) map[string]interface{} {
	counts := map[string]int{}
	total := 0
	for _, target := range root.ChildrenNamed("target") {
		for _, task := range target.Children {
			counts[task.Local]++
			total++
		}
	}
	return map[string]interface{}{"by_type": counts, "total_count": total}
}

func (h *AntBuildHandler) buildMetrics(root *xmlparser.Node, targets []map[string]interface{}, deps map[string]interface{}) map[string]interface{} {
	maxDependencyDepth := 0
	byName := map[string]map[string]interface{}{}
	for _, t := range targets {
		name, _ := t["name"].(string)
		byName[name] = t
	}
	var depth func(name string, seen map[string]bool) int
	depth = func(name string, seen map[string]bool) int {
		if seen[name] {
			return 0
		}
		seen[name] = true
		t, ok := byName[name]
		if !ok {
			return 0
		}
		dependsOn, _ := t["depends"].([]string)
		best := 0
		for _, d := range dependsOn {
			if v := depth(d, seen); v+1 > best {
				best = v + 1
			}
		}
		return best
	}
	for _, t := range targets {
		name, _ := t["name"].(string)
		if d := depth(name, map[string]bool{}); d > maxDependencyDepth {
			maxDependencyDepth = d
		}
	}
	return map[string]interface{}{
		"target_count":          len(targets),
		"max_dependency_depth":  maxDependencyDepth,
		"property_count":        len(h.extractProperties(root)),
	}
}

func (h *AntBuildHandler) assessQuality(findings map[string]interface{}, targets []map[string]interface{}, deps map[string]interface{}) map[string]float64 {
	described := 0
	for _, t := range targets {
		if d, _ := t["description"].(string); d != "" {
			described++
		}
	}
	completeness := 1.0
	if len(targets) > 0 {
		completeness = float64(described) / float64(len(targets))
	}

	metrics, _ := findings["build_metrics"].(map[string]interface{})
	depth, _ := metrics["max_dependency_depth"].(int)
	complexity := clamp(float64(len(targets))*0.05 + float64(depth)*0.1)

	return map[string]float64{
		"completeness": completeness,
		"complexity":   complexity,
	}
}

func (h *AntBuildHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	targets := h.analyzeTargets(root)
	task := h.analyzeTasks(root)
	return map[string]interface{}{
		"build_targets": targets,
		"build_properties": h.extractProperties(root),
		"task_summary": task,
	}
}
