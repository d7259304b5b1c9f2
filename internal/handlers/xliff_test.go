package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the XLIFF handler:
// - Recognizes an XLIFF root by namespace, by root name, and by structure sniffing
// - workflowState prioritizes final over in-progress over pending
// - Analyze computes completion rate and reports the source language

const xliffXML = `<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2">
  <file source-language="en" target-language="fr">
    <body>
      <trans-unit id="1" state="translated">
        <source>Hello</source>
        <target>Bonjour</target>
      </trans-unit>
      <trans-unit id="2" state="needs-translation">
        <source>Goodbye</source>
      </trans-unit>
    </body>
  </file>
</xliff>`

func TestXLIFFHandler_CanHandle_RecognizesNamespace(t *testing.T) {
	t.Parallel()

	h := NewXLIFFHandler()
	doc := mustParse(t, xliffXML)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.Equal(t, 1.0, confidence)
}

func TestXLIFFHandler_CanHandle_RejectsUnrelatedRoot(t *testing.T) {
	t.Parallel()

	h := NewXLIFFHandler()
	doc := mustParse(t, `<unrelated/>`)

	ok, _ := h.CanHandle(doc.Root, doc.Namespaces)
	assert.False(t, ok)
}

func TestXLIFFHandler_Analyze_ComputesCompletionRate(t *testing.T) {
	t.Parallel()

	h := NewXLIFFHandler()
	doc := mustParse(t, xliffXML)

	analysis, err := h.Analyze(doc.Root, "doc.xlf")
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.KeyFindings["unit_count"])
	assert.Equal(t, 1, analysis.KeyFindings["translated_count"])
	assert.Equal(t, 1, analysis.KeyFindings["untranslated_count"])
	assert.Equal(t, 0.5, analysis.KeyFindings["completion_rate"])
	assert.Equal(t, "en", analysis.KeyFindings["source_language"])
}

func TestXLIFFHandler_DetectType_ReportsWorkflowState(t *testing.T) {
	t.Parallel()

	h := NewXLIFFHandler()
	doc := mustParse(t, xliffXML)

	typeInfo := h.DetectType(doc.Root, doc.Namespaces)
	assert.Equal(t, "in_progress", typeInfo.Metadata["workflow_state"])
	assert.Equal(t, "1.2", typeInfo.Version)
}

func TestXLIFFHandler_ExtractKeyData_BuildsTranslationCatalog(t *testing.T) {
	t.Parallel()

	h := NewXLIFFHandler()
	doc := mustParse(t, xliffXML)

	data := h.ExtractKeyData(doc.Root)
	catalog, ok := data["translation_catalog"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, catalog, 2)
	assert.Equal(t, "Hello", catalog[0]["source"])
	assert.Equal(t, "Bonjour", catalog[0]["target"])
}
