package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the SCAP handler:
// - Recognizes an XCCDF Benchmark root by namespace and element scoring
// - Rejects a Benchmark root with no SCAP namespace: the element score alone stays below the threshold
// - Analyze tallies rule severities and a pass-ratio compliance summary

const scapXML = `<Benchmark xmlns="http://checklists.nist.gov/xccdf/1.2">
  <Group id="g1">
    <Rule id="r1" severity="high"/>
    <Rule id="r2" severity="low"/>
  </Group>
  <TestResult>
    <rule-result idref="r1"><result>pass</result></rule-result>
    <rule-result idref="r2"><result>fail</result></rule-result>
  </TestResult>
</Benchmark>`

func TestSCAPHandler_CanHandle_RecognizesXCCDFBenchmark(t *testing.T) {
	t.Parallel()

	h := NewSCAPHandler()
	doc := mustParse(t, scapXML)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.GreaterOrEqual(t, confidence, 0.6)
}

func TestSCAPHandler_CanHandle_RejectsUnrelatedDocument(t *testing.T) {
	t.Parallel()

	h := NewSCAPHandler()
	doc := mustParse(t, `<Benchmark><Rule/></Benchmark>`)

	ok, _ := h.CanHandle(doc.Root, doc.Namespaces)
	assert.False(t, ok)
}

func TestSCAPHandler_Analyze_TalliesSeverityAndComplianceSummary(t *testing.T) {
	t.Parallel()

	h := NewSCAPHandler()
	doc := mustParse(t, scapXML)

	analysis, err := h.Analyze(doc.Root, "benchmark.xml")
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.KeyFindings["total_rules"])

	severities, ok := analysis.KeyFindings["vulnerabilities"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, severities["high"])
	assert.Equal(t, 1, severities["low"])

	summary, ok := analysis.KeyFindings["compliance_summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0.5, summary["pass_ratio"])
}

func TestSCAPHandler_ExtractKeyData_ReportsScanResults(t *testing.T) {
	t.Parallel()

	h := NewSCAPHandler()
	doc := mustParse(t, scapXML)

	data := h.ExtractKeyData(doc.Root)
	results, ok := data["scan_results"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, results, 2)
	assert.Equal(t, "r1", results[0]["rule_id"])
	assert.Equal(t, "pass", results[0]["result"])
}
