package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - chunk writes a JSON array of chunks for a real XML file
// - an explicit --max-chunk-size overrides the config default

func resetChunkFlags() {
	chunkStrategy = ""
	chunkMaxSize = 0
	chunkMinSize = 0
	chunkOverlap = -1
	chunkNoHierarchy = false
	chunkOutFile = ""
}

func TestRunChunk_WritesChunkArray(t *testing.T) {
	loadedConfig = nil
	resetChunkFlags()
	dir := t.TempDir()
	path := writeXMLFile(t, dir, "doc.xml", `<root><section><p>`+strings.Repeat("word ", 200)+`</p></section></root>`)
	outPath := filepath.Join(dir, "chunks.json")
	chunkOutFile = outPath

	err := runChunk(&cobra.Command{}, []string{path})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(data)), "["))
}

func TestRunChunk_HonorsMaxChunkSizeOverride(t *testing.T) {
	loadedConfig = nil
	resetChunkFlags()
	dir := t.TempDir()
	path := writeXMLFile(t, dir, "doc.xml", `<root><section><p>`+strings.Repeat("word ", 500)+`</p></section></root>`)
	outPath := filepath.Join(dir, "chunks.json")
	chunkOutFile = outPath
	chunkMaxSize = 50

	err := runChunk(&cobra.Command{}, []string{path})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// About 2,500 bytes of content is one chunk under the default
	// max_chunk_size of 2000 tokens, but several under 50.
	var chunks []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &chunks))
	assert.Greater(t, len(chunks), 1)
}
