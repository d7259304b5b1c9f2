package handlers

import (
	"strconv"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// TestReportHandler recognizes JUnit and TestNG XML test-result
// reports (spec.md §4.4.5). Both formats use a "testsuite"/"testsuites"
// family of elements with per-case pass/fail/skip children, so one
// handler covers both with a format tag.
type TestReportHandler struct{}

func NewTestReportHandler() *TestReportHandler { return &TestReportHandler{} }

func (h *TestReportHandler) Name() string { return "test-report" }

func (h *TestReportHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	switch root.Local {
	case "testsuite", "testsuites":
		if root.Descendant("testcase") != nil {
			return true, 0.85
		}
		return true, 0.4
	case "testng-results":
		return true, 0.9
	default:
		return false, 0.0
	}
}

func (h *TestReportHandler) format(root *xmlparser.Node) string {
	if root.Local == "testng-results" {
		return "testng"
	}
	return "junit"
}

func (h *TestReportHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Test Report (" + h.format(root) + ")",
		Confidence: 0.9,
		Metadata:   map[string]interface{}{"category": "test_results", "format": h.format(root)},
	}
}

func (h *TestReportHandler) cases(root *xmlparser.Node) []*xmlparser.Node {
	if root.Local == "testng-results" {
		return root.Descendants("test-method")
	}
	return root.Descendants("testcase")
}

func (h *TestReportHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	cases := h.cases(root)
	format := h.format(root)

	var passed, failed, skipped, errored int
	var slowest *xmlparser.Node
	var slowestTime float64

	for _, c := range cases {
		isFailure := c.Child("failure") != nil
		isError := c.Child("error") != nil
		isSkipped := c.Child("skipped") != nil
		if format == "testng" {
			status := c.AttrOr("status", "PASS")
			isFailure = status == "FAIL"
			isSkipped = status == "SKIP"
			isError = false
		}

		switch {
		case isError:
			errored++
		case isFailure:
			failed++
		case isSkipped:
			skipped++
		default:
			passed++
		}

		if t, ok := c.Attr("time"); ok {
			if f, err := strconv.ParseFloat(t, 64); err == nil && f > slowestTime {
				slowestTime = f
				slowest = c
			}
		}
	}

	total := len(cases)
	passRate := 1.0
	if total > 0 {
		passRate = float64(passed) / float64(total)
	}

	findings := map[string]interface{}{
		"format":       format,
		"total_cases":  total,
		"passed":       passed,
		"failed":       failed,
		"errored":      errored,
		"skipped":      skipped,
		"pass_rate":    passRate,
	}
	if slowest != nil {
		findings["slowest_case"] = slowest.AttrOr("name", "")
		findings["slowest_time_s"] = slowestTime
	}

	recommendations := []string{"Investigate flaky or skipped tests before merging"}
	if failed+errored > 0 {
		recommendations = append(recommendations, "Triage failing test cases prior to release")
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: recommendations,
		DataInventory:   map[string]int{"cases": total},
		AIUseCases:      []string{"Flaky test detection", "CI health dashboards", "Test-suite trend analysis"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"pass_rate": clamp(passRate)},
	}, nil
}

func (h *TestReportHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var failing []string
	for _, c := range h.cases(root) {
		if c.Child("failure") != nil || c.Child("error") != nil {
			failing = append(failing, c.AttrOr("name", ""))
		}
	}
	return map[string]interface{}{"failing_cases": failing}
}
