package cli

import (
	"fmt"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
	"github.com/redhat-ai-americas/xml-analyzer/pkg/xmlanalysis"
	"github.com/spf13/cobra"
)

var schemaOutFile string

var schemaCmd = &cobra.Command{
	Use:   "schema <file>",
	Short: "Report structural statistics for an XML file without handler dispatch",
	Long: `Schema parses the given XML file and prints structural statistics
(total element count, maximum nesting depth, unique tag frequency, root
element name) as JSON, without running the handler dispatch engine.

Example:
  xmlanalyzer schema docs/catalog.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutFile, "output", "o", "", "write JSON output to this file instead of stdout")
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	summary, err := xmlanalysis.AnalyzeSchema(args[0], xmlanalysis.WithSizeLimit(xmlparser.SizeLimit(cfg.Parser.MaxFileSizeMB)))
	if err != nil {
		return fmt.Errorf("schema analysis failed: %w", err)
	}
	return writeJSON(summary, schemaOutFile)
}
