// Command xmlanalyzer is the CLI entrypoint: analyze, schema, chunk,
// scan, watch, and mcp subcommands over the xmlanalysis engine.
package main

import "github.com/redhat-ai-americas/xml-analyzer/internal/cli"

func main() {
	cli.Execute()
}
