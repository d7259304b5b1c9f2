package xmlanalysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// Test Plan for the façade:
// - Analyze runs dispatch and returns a populated SpecializedAnalysis
// - Analyze surfaces an IoError for a missing file without dispatching
// - AnalyzeSchema reports counts without running any handler
// - Chunk defaults strategy to auto and config to the spec defaults
// - WithSizeLimit is honored and produces a SizeError before parsing

func writeTempXML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyze_RunsDispatch(t *testing.T) {
	t.Parallel()

	path := writeTempXML(t, `<project><target name="build"/></project>`)
	analysis, err := Analyze(path)
	require.NoError(t, err)
	assert.NotEmpty(t, analysis.TypeName)
}

func TestAnalyze_MissingFileReturnsIoError(t *testing.T) {
	t.Parallel()

	_, err := Analyze(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	var ioErr *xmlmodel.IoError
	require.ErrorAs(t, err, &ioErr)
}

func TestAnalyzeSchema_ReportsStructuralStats(t *testing.T) {
	t.Parallel()

	path := writeTempXML(t, `<root><a/><a/><b><c/></b></root>`)
	summary, err := AnalyzeSchema(path)
	require.NoError(t, err)
	assert.Equal(t, "root", summary.RootElement)
	assert.Equal(t, 5, summary.TotalElements)
	assert.Equal(t, 2, summary.UniqueTags["a"])
}

func TestChunk_DefaultsStrategyAndConfig(t *testing.T) {
	t.Parallel()

	path := writeTempXML(t, `<root><child>hello there</child></root>`)
	chunks, err := Chunk(path, "", xmlmodel.ChunkingConfig{})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
}

func TestAnalyze_HonorsSizeLimit(t *testing.T) {
	t.Parallel()

	path := writeTempXML(t, `<root>`+string(make([]byte, 1024))+`</root>`)
	_, err := Analyze(path, WithSizeLimit(xmlparser.SizeLimit(0.0001)))
	require.Error(t, err)
	var sizeErr *xmlmodel.SizeError
	require.ErrorAs(t, err, &sizeErr)
}
