package cli

import (
	"fmt"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
	"github.com/redhat-ai-americas/xml-analyzer/pkg/xmlanalysis"
	"github.com/spf13/cobra"
)

var (
	chunkStrategy    string
	chunkMaxSize     int
	chunkMinSize     int
	chunkOverlap     int
	chunkNoHierarchy bool
	chunkOutFile     string
)

var chunkCmd = &cobra.Command{
	Use:   "chunk <file>",
	Short: "Analyze an XML file and split it into size-bounded chunks",
	Long: `Chunk analyzes the given XML file, then runs the chunking
orchestrator over the result, printing the resulting chunks as JSON.

Example:
  xmlanalyzer chunk docs/catalog.xml --strategy hierarchical`,
	Args: cobra.ExactArgs(1),
	RunE: runChunk,
}

func init() {
	rootCmd.AddCommand(chunkCmd)
	chunkCmd.Flags().StringVarP(&chunkStrategy, "strategy", "s", "", "chunking strategy: hierarchical, sliding-window, content-aware, or auto (default: config/auto)")
	chunkCmd.Flags().IntVar(&chunkMaxSize, "max-chunk-size", 0, "maximum chunk size in estimated tokens (default: config value)")
	chunkCmd.Flags().IntVar(&chunkMinSize, "min-chunk-size", 0, "minimum chunk size in estimated tokens (default: config value)")
	chunkCmd.Flags().IntVar(&chunkOverlap, "overlap-size", -1, "token overlap between adjacent chunks (default: config value)")
	chunkCmd.Flags().BoolVar(&chunkNoHierarchy, "no-preserve-hierarchy", false, "omit the parent_context ancestor snapshot from every chunk")
	chunkCmd.Flags().StringVarP(&chunkOutFile, "output", "o", "", "write JSON output to this file instead of stdout")
}

func runChunk(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()

	chunkCfg := cfg.Chunking
	if chunkMaxSize > 0 {
		chunkCfg.MaxChunkSize = chunkMaxSize
	}
	if chunkMinSize > 0 {
		chunkCfg.MinChunkSize = chunkMinSize
	}
	if chunkOverlap >= 0 {
		chunkCfg.OverlapSize = chunkOverlap
	}
	if chunkNoHierarchy {
		chunkCfg.PreserveHierarchy = false
	}

	chunks, err := xmlanalysis.Chunk(args[0], chunkStrategy, chunkCfg,
		xmlanalysis.WithSizeLimit(xmlparser.SizeLimit(cfg.Parser.MaxFileSizeMB)))
	if err != nil {
		return fmt.Errorf("chunking failed: %w", err)
	}

	return writeJSON(chunks, chunkOutFile)
}
