package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the GraphML handler:
// - Recognizes a graphml root carrying the GraphML namespace
// - Computes node/edge counts and flags a dangling edge reference

func TestGraphMLHandler_CanHandle(t *testing.T) {
	t.Parallel()

	h := NewGraphMLHandler()
	doc := mustParse(t, `<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <graph edgedefault="directed">
    <node id="n0"/>
    <node id="n1"/>
    <edge source="n0" target="n1"/>
  </graph>
</graphml>`)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.Equal(t, 0.95, confidence)
}

func TestGraphMLHandler_Analyze_DetectsDanglingEdge(t *testing.T) {
	t.Parallel()

	h := NewGraphMLHandler()
	doc := mustParse(t, `<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <graph edgedefault="directed">
    <node id="n0"/>
    <edge source="n0" target="missing"/>
  </graph>
</graphml>`)

	analysis, err := h.Analyze(doc.Root, "g.graphml")
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.KeyFindings["node_count"])
	assert.Equal(t, 1, analysis.KeyFindings["edge_count"])
	assert.Equal(t, 0.0, analysis.QualityMetrics["reference_integrity"])
}
