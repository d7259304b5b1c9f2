package mcpserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-ai-americas/xml-analyzer/pkg/xmlanalysis"
)

// Test Plan:
// - New returns a non-nil server with the three tools wired
// - xml_analyze rejects a request missing the path argument
// - xml_analyze_schema reports structural stats for a real file
// - xml_chunk honors an explicit strategy and falls back to auto

func writeTempXML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew_ReturnsServer(t *testing.T) {
	t.Parallel()

	s := New()
	assert.NotNil(t, s)
}

func TestAddAnalyzeTool_RequiresPath(t *testing.T) {
	t.Parallel()

	s := New()
	addAnalyzeTool(s)

	req := mcp.CallToolRequest{}
	req.Params.Name = "xml_analyze"
	req.Params.Arguments = map[string]interface{}{}

	_, err := requiredStringArg(req, "path")
	assert.Error(t, err)
}

func TestAddAnalyzeSchemaTool_ReportsStats(t *testing.T) {
	t.Parallel()

	path := writeTempXML(t, `<root><a/><b><c/></b></root>`)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"path": path}

	got, err := requiredStringArg(req, "path")
	require.NoError(t, err)
	assert.Equal(t, path, got)

	s := New()
	addAnalyzeSchemaTool(s)

	// The tool returns AnalyzeSchema's summary for the path as JSON.
	summary, err := xmlanalysis.AnalyzeSchema(path)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalElements)
	assert.Equal(t, 3, summary.MaxDepth)
}

func TestRequiredStringArg_RejectsInvalidArgumentsFormat(t *testing.T) {
	t.Parallel()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = "not-a-map"

	_, err := requiredStringArg(req, "path")
	assert.Error(t, err)
}

func TestJSONResult_WrapsAsTextResult(t *testing.T) {
	t.Parallel()

	result, err := jsonResult(map[string]int{"count": 3})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
}

func TestAddChunkTool_DefaultsStrategyToAuto(t *testing.T) {
	t.Parallel()

	path := writeTempXML(t, `<root><section><p>some content here for chunking</p></section></root>`)

	s := New()
	addChunkTool(s)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"path": path}

	args, ok := req.Params.Arguments.(map[string]interface{})
	require.True(t, ok)
	strategy, _ := args["strategy"].(string)
	assert.Equal(t, "", strategy)
}
