// Package mcpserver exposes Analyze, AnalyzeSchema, and Chunk as MCP
// tools over stdio, adapted from the teacher's internal/mcp
// tool-registration idiom (mark3labs/mcp-go), narrowed from that
// package's project-wide search/graph tool set to this domain's three
// façade operations.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/redhat-ai-americas/xml-analyzer/internal/chunking"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/pkg/xmlanalysis"
)

// New builds an MCP server with the xml_analyze, xml_analyze_schema,
// and xml_chunk tools registered.
func New() *server.MCPServer {
	s := server.NewMCPServer(
		"xml-analyzer-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	addAnalyzeTool(s)
	addAnalyzeSchemaTool(s)
	addChunkTool(s)

	return s
}

// Serve runs the MCP server on stdio until the client disconnects.
func Serve() error {
	if err := server.ServeStdio(New()); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}

func addAnalyzeTool(s *server.MCPServer) {
	tool := mcp.NewTool(
		"xml_analyze",
		mcp.WithDescription("Safe-parse an XML file and run it through the handler dispatch engine, returning the specialized analysis (document type, key findings, recommendations, structured data, quality metrics)."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the XML file to analyze")),
	)
	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := requiredStringArg(req, "path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		analysis, err := xmlanalysis.Analyze(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(analysis)
	})
}

func addAnalyzeSchemaTool(s *server.MCPServer) {
	tool := mcp.NewTool(
		"xml_analyze_schema",
		mcp.WithDescription("Safe-parse an XML file and report structural statistics only (total elements, max depth, unique tags) without running handler dispatch."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the XML file to analyze")),
	)
	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := requiredStringArg(req, "path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		summary, err := xmlanalysis.AnalyzeSchema(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(summary)
	})
}

func addChunkTool(s *server.MCPServer) {
	tool := mcp.NewTool(
		"xml_chunk",
		mcp.WithDescription("Analyze an XML file and split it into addressable, size-bounded chunks suitable for retrieval-augmented generation or downstream model input."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the XML file to chunk")),
		mcp.WithString("strategy", mcp.Description("Chunking strategy: hierarchical, sliding-window, content-aware, or auto (default: auto)")),
		mcp.WithNumber("max_chunk_size", mcp.Description("Maximum chunk size in estimated tokens (default: 2000)")),
	)
	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := req.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		path, _ := args["path"].(string)
		if path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}
		strategy, _ := args["strategy"].(string)
		if strategy == "" {
			strategy = chunking.StrategyAuto
		}

		cfg := xmlmodel.DefaultChunkingConfig()
		if size, ok := args["max_chunk_size"].(float64); ok && size > 0 {
			cfg.MaxChunkSize = int(size)
		}

		chunks, err := xmlanalysis.Chunk(path, strategy, cfg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(chunks)
	})
}

func requiredStringArg(req mcp.CallToolRequest, name string) (string, error) {
	args, ok := req.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid arguments format")
	}
	v, ok := args[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s parameter is required", name)
	}
	return v, nil
}

// jsonResult marshals v to JSON and wraps it as a tool text result,
// the convention every tool in this package's teacher uses
// (internal/mcp/helpers.go's marshalToolResponse).
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
