package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the DocBook handler:
// - Recognizes a book root carrying the DocBook namespace plus chapters
// - Rejects a root element DocBook doesn't recognize
// - Analyze flags dangling xref/linkend targets and builds a section outline

const docbookXML = `<book xmlns="http://docbook.org/ns/docbook" version="5.0">
  <title>Guide</title>
  <chapter xml:id="intro">
    <title>Introduction</title>
    <xref linkend="intro"/>
    <xref linkend="missing"/>
  </chapter>
</book>`

func TestDocBookHandler_CanHandle_RecognizesBookWithChapters(t *testing.T) {
	t.Parallel()

	h := NewDocBookHandler()
	doc := mustParse(t, docbookXML)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.GreaterOrEqual(t, confidence, 0.5)
}

func TestDocBookHandler_CanHandle_RejectsUnrecognizedRoot(t *testing.T) {
	t.Parallel()

	h := NewDocBookHandler()
	doc := mustParse(t, `<memo/>`)

	ok, _ := h.CanHandle(doc.Root, doc.Namespaces)
	assert.False(t, ok)
}

func TestDocBookHandler_Analyze_FlagsDanglingXref(t *testing.T) {
	t.Parallel()

	h := NewDocBookHandler()
	doc := mustParse(t, docbookXML)

	analysis, err := h.Analyze(doc.Root, "guide.xml")
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.KeyFindings["cross_references"])
	assert.Equal(t, 1, analysis.KeyFindings["dangling_refs"])
	assert.InDelta(t, 0.5, analysis.QualityMetrics["reference_integrity"], 0.001)
}

func TestDocBookHandler_ExtractKeyData_BuildsOutline(t *testing.T) {
	t.Parallel()

	h := NewDocBookHandler()
	doc := mustParse(t, docbookXML)

	data := h.ExtractKeyData(doc.Root)
	outline, ok := data["outline"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, outline, 1)
	assert.Equal(t, "Introduction", outline[0]["title"])
}
