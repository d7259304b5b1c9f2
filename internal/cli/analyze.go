package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
	"github.com/redhat-ai-americas/xml-analyzer/pkg/xmlanalysis"
	"github.com/spf13/cobra"
)

var analyzeOutFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Safe-parse an XML file and run handler dispatch",
	Long: `Analyze parses the given XML file, runs it through the handler
dispatch engine, and prints the winning handler's specialized analysis
(document type, key findings, recommendations, structured data, quality
metrics) as JSON.

Example:
  xmlanalyzer analyze docs/catalog.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeOutFile, "output", "o", "", "write JSON output to this file instead of stdout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	analysis, err := xmlanalysis.Analyze(args[0], xmlanalysis.WithSizeLimit(xmlparser.SizeLimit(cfg.Parser.MaxFileSizeMB)))
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}
	return writeJSON(analysis, analyzeOutFile)
}

func writeJSON(v interface{}, outFile string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if outFile == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", outFile)
	return nil
}
