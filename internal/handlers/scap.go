package handlers

import (
	"regexp"
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

var scapNamespacePatterns = []string{
	"http://scap.nist.gov/schema/",
	"http://checklists.nist.gov/xccdf/",
	"http://oval.mitre.org/xmlschema/",
	"asset-report-collection",
	"data-stream-collection",
}

var scapRootElements = map[string]bool{
	"Benchmark":               true,
	"TestResult":              true,
	"Profile":                 true,
	"asset-report-collection": true,
	"oval_definitions":        true,
}

// SCAPHandler recognizes NIST SCAP security-compliance documents
// (XCCDF benchmarks, OVAL definitions, test results), per spec.md
// §4.4.1. Grounded on
// original_source/src/handlers/scap_handler.py.
type SCAPHandler struct{}

func NewSCAPHandler() *SCAPHandler { return &SCAPHandler{} }

func (h *SCAPHandler) Name() string { return "scap" }

func (h *SCAPHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	haystack := strings.ToLower(strings.Join(namespaceValues(namespaces), " ") + " " + root.Namespace)

	score := 0.0
	for _, p := range scapNamespacePatterns {
		if strings.Contains(haystack, strings.ToLower(p)) {
			score += 0.4
			break
		}
	}
	if scapRootElements[root.Local] {
		score += 0.4
	}
	if strings.Contains(haystack, "xccdf") {
		score += 0.3
	}
	if strings.Contains(haystack, "oval") {
		score += 0.3
	}

	if score >= 0.6 {
		return true, clamp(score)
	}
	return false, 0.0
}

func namespaceValues(namespaces map[string]string) []string {
	var out []string
	for _, v := range namespaces {
		out = append(out, v)
	}
	return out
}

var scapVersionRE = regexp.MustCompile(`/(\d+\.\d+)/?`)

func (h *SCAPHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	var version, schemaURI string
	for _, uri := range namespaces {
		if strings.Contains(uri, "scap.nist.gov") || strings.Contains(uri, "checklists.nist.gov/xccdf") || strings.Contains(uri, "oval.mitre.org") {
			schemaURI = uri
			if m := scapVersionRE.FindStringSubmatch(uri); m != nil {
				version = m[1]
			}
		}
	}

	rootNS := strings.ToLower(root.Namespace)
	docType := "SCAP Security Report"
	switch {
	case strings.Contains(rootNS, "xccdf") || root.Local == "Benchmark":
		docType = "SCAP/XCCDF Document"
	case strings.Contains(rootNS, "oval"):
		docType = "SCAP/OVAL Document"
	case strings.HasSuffix(rootNS, "xmlschema"):
		docType = "SCAP/XSD Schema"
	}

	if schemaURI == "" {
		schemaURI = root.Namespace
	}

	return xmlmodel.DocumentTypeInfo{
		TypeName:   docType,
		Confidence: 0.9,
		Version:    version,
		SchemaURI:  schemaURI,
		Metadata: map[string]interface{}{
			"standard":     "NIST SCAP",
			"category":     "security_compliance",
			"root_element": root.Local,
			"namespace":    root.Namespace,
		},
	}
}

func (h *SCAPHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	rules := root.Descendants("Rule")
	groups := root.Descendants("Group")
	results := h.ruleResults(root)

	findings := map[string]interface{}{
		"total_rules":        len(rules),
		"total_groups":        len(groups),
		"vulnerabilities":     h.countBySeverity(rules),
		"compliance_summary":  h.complianceSummary(results),
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings: findings,
		Recommendations: []string{
			"Use for automated compliance monitoring",
			"Extract failed rules for remediation workflows",
			"Trend analysis on compliance scores over time",
			"Risk scoring based on vulnerability severity",
		},
		DataInventory: map[string]int{
			"rules":        len(rules),
			"groups":       len(groups),
			"rule_results": len(results),
		},
		AIUseCases: []string{
			"Automated compliance report generation",
			"Predictive risk analysis",
			"Remediation recommendation engine",
			"Compliance trend forecasting",
			"Security posture classification",
		},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics: h.assessQuality(results, rules),
	}, nil
}

func (h *SCAPHandler) ruleResults(root *xmlparser.Node) []*xmlparser.Node {
	return root.Descendants("rule-result")
}

func (h *SCAPHandler) countBySeverity(rules []*xmlparser.Node) map[string]int {
	counts := map[string]int{"high": 0, "medium": 0, "low": 0, "unknown": 0}
	for _, r := range rules {
		sev := strings.ToLower(r.AttrOr("severity", "unknown"))
		if _, ok := counts[sev]; !ok {
			sev = "unknown"
		}
		counts[sev]++
	}
	return counts
}

func (h *SCAPHandler) complianceSummary(results []*xmlparser.Node) map[string]interface{} {
	counts := map[string]int{}
	for _, r := range results {
		status := "unknown"
		if c := r.Child("result"); c != nil {
			status = c.TextTrimmed()
		}
		counts[status]++
	}
	total := len(results)
	pass := counts["pass"]
	score := 0.0
	if total > 0 {
		score = float64(pass) / float64(total)
	}
	return map[string]interface{}{
		"by_status":  counts,
		"total":      total,
		"pass_ratio": score,
	}
}

func (h *SCAPHandler) assessQuality(results []*xmlparser.Node, rules []*xmlparser.Node) map[string]float64 {
	summary := h.complianceSummary(results)
	passRatio, _ := summary["pass_ratio"].(float64)
	completeness := 0.5
	if len(rules) > 0 {
		completeness = 0.85
	}
	return map[string]float64{
		"completeness":  completeness,
		"consistency":   clamp(0.5 + passRatio/2),
		"data_density":  clamp(float64(len(results)) / 100),
	}
}

func (h *SCAPHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	results := h.ruleResults(root)
	var scanResults []map[string]interface{}
	for _, r := range results {
		status := ""
		if c := r.Child("result"); c != nil {
			status = c.TextTrimmed()
		}
		scanResults = append(scanResults, map[string]interface{}{
			"rule_id": r.AttrOr("idref", ""),
			"result":  status,
		})
	}

	systemInfo := map[string]interface{}{}
	if ti := root.Descendant("target"); ti != nil {
		systemInfo["target"] = ti.TextTrimmed()
	}

	summary := h.complianceSummary(results)
	return map[string]interface{}{
		"scan_results":      scanResults,
		"system_info":       systemInfo,
		"compliance_scores": summary,
	}
}
