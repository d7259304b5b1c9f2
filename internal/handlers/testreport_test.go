package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the test-report handler:
// - Recognizes a JUnit testsuite document
// - Computes pass/fail counts and the pass-rate quality metric

func TestTestReportHandler_CanHandle_JUnit(t *testing.T) {
	t.Parallel()

	h := NewTestReportHandler()
	doc := mustParse(t, `<testsuite name="pkg" tests="2" failures="1">
  <testcase name="a" time="0.1"/>
  <testcase name="b" time="0.2"><failure message="boom"/></testcase>
</testsuite>`)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.Equal(t, 0.85, confidence)
}

func TestTestReportHandler_Analyze_ComputesPassRate(t *testing.T) {
	t.Parallel()

	h := NewTestReportHandler()
	doc := mustParse(t, `<testsuite name="pkg" tests="2" failures="1">
  <testcase name="a" time="0.1"/>
  <testcase name="b" time="0.2"><failure message="boom"/></testcase>
</testsuite>`)

	analysis, err := h.Analyze(doc.Root, "report.xml")
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.KeyFindings["total_cases"])
	assert.Equal(t, 1, analysis.KeyFindings["passed"])
	assert.Equal(t, 1, analysis.KeyFindings["failed"])
	assert.Equal(t, 0.5, analysis.QualityMetrics["pass_rate"])
}
