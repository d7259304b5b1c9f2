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
// - schema reports structural stats as JSON without dispatch

func TestRunSchema_ReportsStructuralStats(t *testing.T) {
	loadedConfig = nil
	dir := t.TempDir()
	path := writeXMLFile(t, dir, "doc.xml", `<root><a/><b><c/></b></root>`)
	outPath := filepath.Join(dir, "schema.json")

	schemaOutFile = outPath
	defer func() { schemaOutFile = "" }()

	err := runSchema(&cobra.Command{}, []string{path})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "total_elements")
	assert.Contains(t, string(data), "root_element")
}
