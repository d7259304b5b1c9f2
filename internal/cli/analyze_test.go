package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - analyze writes JSON analysis to stdout by default
// - analyze writes to --output when given
// - analyze on a missing file returns an error

func writeXMLFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunAnalyze_WritesOutputFile(t *testing.T) {
	loadedConfig = nil
	dir := t.TempDir()
	path := writeXMLFile(t, dir, "doc.xml", `<root><a/></root>`)
	outPath := filepath.Join(dir, "out.json")

	analyzeOutFile = outPath
	defer func() { analyzeOutFile = "" }()

	err := runAnalyze(&cobra.Command{}, []string{path})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "key_findings")
}

func TestRunAnalyze_MissingFileReturnsError(t *testing.T) {
	loadedConfig = nil
	analyzeOutFile = ""

	err := runAnalyze(&cobra.Command{}, []string{"/does/not/exist.xml"})
	assert.Error(t, err)
}
