package cli

import (
	"fmt"
	"os"

	"github.com/redhat-ai-americas/xml-analyzer/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server exposing xml_analyze, xml_analyze_schema, and xml_chunk",
	Long: `Start the Model Context Protocol (MCP) server that exposes this
engine's analyze/schema/chunk operations as tools for LLM-powered coding
assistants, communicating over stdio.

Example:
  xmlanalyzer mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stderr, "xml-analyzer MCP server starting (stdio transport)")
	if err := mcpserver.Serve(); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}
